package catalog

// Context is the data handed to a view. It always carries "title".
type Context map[string]any

// Outcome is what a successful operation asks the transport to do: render
// View with Context, or redirect to Redirect.
type Outcome struct {
	View     string
	Context  Context
	Redirect string
	// Flash is shown on the page after a redirect.
	Flash string
	// Recovered is set when the operation handled a validation failure or
	// an integrity guard locally by re-rendering.
	Recovered Kind
}

func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}

func render(view string, ctx Context) Outcome {
	return Outcome{View: view, Context: ctx}
}

func redirect(url, flash string) Outcome {
	return Outcome{Redirect: url, Flash: flash}
}
