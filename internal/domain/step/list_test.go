package step

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitpanel/orbitsweep/internal/domain/discover"
	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
)

func factsWithUsers(names ...string) discover.Facts {
	return discover.Facts{Installed: true, PanelUsers: names}
}

type stubStep struct {
	id StepID
}

func (s stubStep) ID() StepID                       { return s.id }
func (s stubStep) Describe() string                 { return s.id.String() }
func (s stubStep) Check(RunContext) (Status, error) { return StatusSatisfied, nil }
func (s stubStep) Plan(RunContext) (Diff, error)    { return Diff{}, nil }
func (s stubStep) Apply(RunContext) error           { return nil }

type stubProvider struct {
	name  string
	steps []Step
	err   error
}

func (p stubProvider) Name() string                         { return p.name }
func (p stubProvider) Compile(CompileContext) ([]Step, error) { return p.steps, p.err }

func TestList_PreservesOrder(t *testing.T) {
	t.Parallel()

	list := NewList()
	first := stubStep{id: MustNewStepID("systemd:stop:orbitd")}
	second := stubStep{id: MustNewStepID("rpm:remove:orbit-php")}
	require.NoError(t, list.Append(first, second))

	require.Equal(t, 2, list.Len())
	assert.Equal(t, "systemd:stop:orbitd", list.Steps()[0].ID().String())
	assert.Equal(t, "rpm:remove:orbit-php", list.Steps()[1].ID().String())
}

func TestList_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	list := NewList()
	s := stubStep{id: MustNewStepID("files:remove:/var/log/orbit")}
	require.NoError(t, list.Append(s))

	err := list.Append(s)
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, ErrCodeStepDuplicate, stepErr.Code)
}

func TestRegistry_CompilesInRegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubProvider{name: "systemd", steps: []Step{stubStep{id: MustNewStepID("systemd:stop:nginx")}}})
	reg.Register(stubProvider{name: "rpm", steps: []Step{stubStep{id: MustNewStepID("rpm:remove:exim")}}})

	m := &manifest.Manifest{}
	list, err := reg.Compile(NewCompileContext(m))
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())
	assert.Equal(t, "systemd", list.Steps()[0].ID().Provider())
	assert.Equal(t, "rpm", list.Steps()[1].ID().Provider())
}

func TestRegistry_WrapsProviderFailure(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubProvider{name: "repo", err: fmt.Errorf("boom")})

	_, err := reg.Compile(NewCompileContext(&manifest.Manifest{}))
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, ErrCodeProviderFailed, stepErr.Code)
	assert.Equal(t, "repo", stepErr.Provider)
}

func TestCompileContext_UsersPrefersDiscoveredList(t *testing.T) {
	t.Parallel()

	m := &manifest.Manifest{Users: []manifest.User{
		{Name: "admin", WebData: "/home/admin/web"},
		{Name: "orbit", WebData: "/home/orbit/web"},
	}}

	ctx := NewCompileContext(m)
	assert.Len(t, ctx.Users(), 2)

	ctx = ctx.WithFacts(factsWithUsers("admin", "deploy"))
	users := ctx.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "/home/admin/web", users[0].WebData)
	assert.Equal(t, "deploy", users[1].Name)
	assert.Empty(t, users[1].WebData)
}
