// Package manifest defines the removal manifest: the declarative table of
// everything the panel installer put on the machine, in the order it has
// to come off again.
package manifest

// Manifest is the full removal table. Section order mirrors execution
// order: services stop before packages, packages before files, files
// before config reverts, users last.
type Manifest struct {
	Panel    Panel    `yaml:"panel"`
	Services Services `yaml:"services"`
	Packages Packages `yaml:"packages"`
	Paths    Paths    `yaml:"paths"`
	System   System   `yaml:"system"`
	Users    []User   `yaml:"users"`
}

// Panel identifies the control panel installation this manifest removes.
type Panel struct {
	Name        string `yaml:"name"`
	InstallRoot string `yaml:"install_root"`
	// MetadataFile is the panel's own TOML metadata, relative to InstallRoot.
	MetadataFile string `yaml:"metadata_file"`
	// MaxGeneration is the newest panel generation this tool knows how to
	// take apart. Newer installs ship their own removal tooling.
	MaxGeneration string `yaml:"max_generation"`
}

// Services lists systemd state to revert, in order.
type Services struct {
	// Stop are units stopped and disabled (the panel's own daemons first).
	Stop []string `yaml:"stop"`
	// Unmask are units the installer masked to keep them from competing
	// with the bundled stack.
	Unmask []string `yaml:"unmask"`
	// UnitFiles are unit definitions the installer dropped into
	// /etc/systemd/system.
	UnitFiles []string `yaml:"unit_files"`
}

// Packages lists what the package manager has to remove, in dependency
// order (dependents before the packages they depend on).
type Packages struct {
	Remove  []string       `yaml:"remove"`
	Globs   []string       `yaml:"globs"`
	Guarded GuardedPackage `yaml:"guarded"`
}

// GuardedPackage is a package whose uninstall scriptlet is known to
// corrupt the host when forced. It is removed normally, but a failure is
// only ever answered with the remediation text.
type GuardedPackage struct {
	Name        string   `yaml:"name"`
	Remediation []string `yaml:"remediation"`
}

// Paths lists filesystem entries to delete.
type Paths struct {
	Remove []string `yaml:"remove"`
	Globs  []string `yaml:"globs"`
	// Acme is the certificate store; deleting it loses issued certificates,
	// so it is confirmed separately.
	Acme string `yaml:"acme"`
}

// System describes the fixed configuration edits to revert.
type System struct {
	SELinuxConfig string `yaml:"selinux_config"`
	// SELinuxSaved is the pre-install copy the installer left behind, if any.
	SELinuxSaved string `yaml:"selinux_saved"`
	HostsFile    string `yaml:"hosts_file"`
	// Marker tags every line the installer added to hosts, sysctl and limits.
	Marker       string   `yaml:"marker"`
	RCLocal      string   `yaml:"rc_local"`
	SysctlConfig string   `yaml:"sysctl_config"`
	SysctlKeys   []string `yaml:"sysctl_keys"`
	LimitsConfig string   `yaml:"limits_config"`
	ResolvConfig string   `yaml:"resolv_config"`
	ResolvSaved  string   `yaml:"resolv_saved"`
	RepoFile     string   `yaml:"repo_file"`
	// RepoHost must appear in the repo file's baseurl before it is deleted.
	RepoHost string `yaml:"repo_host"`
	// CrontabMatch marks root crontab lines that belong to the panel.
	CrontabMatch string `yaml:"crontab_match"`
}

// User is a system account the installer created.
type User struct {
	Name string `yaml:"name"`
	// WebData is the user's website data directory, removed with the account.
	WebData string `yaml:"web_data"`
}

// Validate checks the invariants providers rely on.
func (m *Manifest) Validate() error {
	if m.Panel.Name == "" {
		return NewUserError(ErrCodeManifestInvalid, "panel.name is required")
	}
	if m.Panel.InstallRoot == "" {
		return NewUserError(ErrCodeManifestInvalid, "panel.install_root is required").
			WithSuggestion("set panel.install_root to the panel's installation directory")
	}
	if m.Packages.Guarded.Name != "" && len(m.Packages.Guarded.Remediation) == 0 {
		return NewUserError(ErrCodeManifestInvalid, "packages.guarded.remediation is required when a guarded package is set").
			WithSuggestion("list the manual recovery commands for the guarded package")
	}
	if m.System.CrontabMatch == "" {
		m.System.CrontabMatch = m.Panel.InstallRoot
	}
	return nil
}
