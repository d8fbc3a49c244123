package skipme

type Skipped struct {
	A int
}
