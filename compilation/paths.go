package compilation

import "github.com/masnyjimmy/srihc/docs"

// Route is one handler method bound to a method and path template.
type Route struct {
	Method   string
	Template *PathTemplate
	Handler  string
	Params   []docs.RawParameter
}

type Routes []Route
