package schema

// Stack collects the documents pushed during one render. A Stack must not be
// shared between requests; create one per request and carry it on the
// request context.
type Stack struct {
	docs []Document
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push appends a document. Empty documents are dropped.
func (s *Stack) Push(doc Document) {
	if s == nil || len(doc) == 0 {
		return
	}
	s.docs = append(s.docs, doc)
}

// All returns the pushed documents in push order.
func (s *Stack) All() []Document {
	if s == nil || len(s.docs) == 0 {
		return nil
	}
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Clear empties the stack.
func (s *Stack) Clear() {
	if s == nil {
		return
	}
	s.docs = nil
}

func (s *Stack) IsEmpty() bool { return s.Count() == 0 }

func (s *Stack) Count() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}
