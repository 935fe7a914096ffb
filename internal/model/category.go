package model

// Category is a movie category such as "Action" or "Drama".
type Category struct {
	ID   int64
	Name string
}

// Kind names the resource; it is both the table name and the route segment.
func (Category) Kind() string { return "category" }
