// Package answer defines the structured three-part reply contract shared
// between the chat orchestrator and the client: an explanation, a code
// block, and related resource links.
package answer

// Resource is a single related link extracted from the Resources section.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Envelope is the parsed result of one AI invocation. All fields are always
// present so consumers only ever branch on emptiness, never on absence.
type Envelope struct {
	Explanation string     `json:"explanation"`
	Code        string     `json:"code"`
	Resources   []Resource `json:"resources"`
}
