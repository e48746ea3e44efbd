package ctxkeys

type Key int

const (
	ViewerID Key = iota // string: anonymous viewer ID from the viewer cookie
)
