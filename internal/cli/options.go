package cli

import "time"

// Options is the root of the CLI. Struct tags are interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config   string        `short:"f" long:"config" env:"RB_CONFIG" description:"board configuration YAML/JSON path or URL"`
	Upstream string        `short:"u" long:"upstream" env:"RB_UPSTREAM_URL" description:"remote collection URL"`
	Timeout  time.Duration `long:"timeout" env:"RB_REQUEST_TIMEOUT" description:"per-request timeout for upstream calls"`

	Serve   *ServeCmd   `command:"serve"   description:"Serve the board page and JSON API"`
	List    *ListCmd    `command:"list"    description:"Load the collection and print it"`
	Create  *CreateCmd  `command:"create"  description:"Create a record and print the collection"`
	Update  *UpdateCmd  `command:"update"  description:"Update a record and print the collection"`
	Delete  *DeleteCmd  `command:"delete"  description:"Delete a record and print the collection"`
	Sandbox *SandboxCmd `command:"sandbox" description:"Run an in-memory stand-in for the remote collection"`
}

// Init instantiates every sub-command so that go-flags can populate its fields
// wherever the command name appears on the command line.
func (o *Options) Init() {
	o.Serve = &ServeCmd{}
	o.List = &ListCmd{}
	o.Create = &CreateCmd{}
	o.Update = &UpdateCmd{}
	o.Delete = &DeleteCmd{}
	o.Sandbox = &SandboxCmd{}
}
