package step

// List is an ordered collection of steps. Declaration order is execution
// order; there is no dependency graph because the removal sequence is a
// total order by construction.
type List struct {
	steps []Step
	seen  map[string]struct{}
}

// NewList creates an empty List.
func NewList() *List {
	return &List{seen: make(map[string]struct{})}
}

// Append adds steps in order, rejecting duplicate IDs.
func (l *List) Append(steps ...Step) error {
	for _, s := range steps {
		id := s.ID().String()
		if _, dup := l.seen[id]; dup {
			return NewStepError(ErrCodeStepDuplicate, "duplicate step ID").WithStepID(id)
		}
		l.seen[id] = struct{}{}
		l.steps = append(l.steps, s)
	}
	return nil
}

// Steps returns the steps in declaration order.
func (l *List) Steps() []Step {
	return l.steps
}

// Len returns the number of steps.
func (l *List) Len() int {
	return len(l.steps)
}

// Registry holds providers in registration order and compiles them into
// a single ordered List.
type Registry struct {
	providers []Provider
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider. Registration order is execution order.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Providers returns all registered providers.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Compile asks every provider for its steps and builds the ordered list.
func (r *Registry) Compile(ctx CompileContext) (*List, error) {
	list := NewList()
	for _, p := range r.providers {
		steps, err := p.Compile(ctx)
		if err != nil {
			return nil, NewStepError(ErrCodeProviderFailed, "provider failed to compile").
				WithProvider(p.Name()).
				WithUnderlying(err)
		}
		if err := list.Append(steps...); err != nil {
			return nil, err
		}
	}
	return list, nil
}
