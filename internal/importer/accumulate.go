package importer

// Record is one logical unit parsed from an upload: a question with its
// answers, or a single phone number with no fields.
type Record struct {
	RawText      string   `json:"raw_text"`
	Prompt       string   `json:"prompt"`
	Fields       []string `json:"fields"`
	CorrectIndex int      `json:"correct_index"` // -1 when nothing is marked
}

// Accumulator builds records from a classified line stream. It is owned by a
// single parse call and must not be shared.
type Accumulator struct {
	out  []Record
	cur  *Record
	open bool
}

// Open reports whether a record is currently accepting fields.
func (a *Accumulator) Open() bool { return a.open }

// Start seals the open record, if any, and opens a new one.
func (a *Accumulator) Start(raw, prompt string) {
	a.seal()
	a.cur = &Record{RawText: raw, Prompt: prompt, Fields: []string{}, CorrectIndex: -1}
	a.open = true
}

// Add appends a field to the open record. It reports false when no record is
// open.
func (a *Accumulator) Add(field string, correct bool) bool {
	if !a.open {
		return false
	}
	a.cur.Fields = append(a.cur.Fields, field)
	if correct {
		a.cur.CorrectIndex = len(a.cur.Fields) - 1
	}
	return true
}

// Records seals any open record and returns everything accumulated so far.
func (a *Accumulator) Records() []Record {
	a.seal()
	if a.out == nil {
		return []Record{}
	}
	return a.out
}

func (a *Accumulator) seal() {
	if !a.open {
		return
	}
	a.out = append(a.out, *a.cur)
	a.cur = nil
	a.open = false
}
