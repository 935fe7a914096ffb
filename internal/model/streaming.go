package model

// Streaming is a streaming platform such as "Netflix".
type Streaming struct {
	ID   int64
	Name string
}

// Kind names the resource; it is both the table name and the route segment.
func (Streaming) Kind() string { return "streaming" }
