package results

type Option struct {
	Label   string `json:"label"`
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
}

// QuestionOutcome is how one participant answered one question.
type QuestionOutcome struct {
	Number        int      `json:"number"`
	Text          string   `json:"text"`
	Options       []Option `json:"options"`
	StudentAnswer string   `json:"student_answer"` // option label
}

func (q QuestionOutcome) Correct() bool {
	for _, o := range q.Options {
		if o.Correct {
			return o.Label == q.StudentAnswer
		}
	}
	return false
}

// AnswerText renders the chosen option as "C - Sample Option".
func (q QuestionOutcome) AnswerText() string {
	for _, o := range q.Options {
		if o.Label == q.StudentAnswer {
			return o.Label + " - " + o.Text
		}
	}
	return q.StudentAnswer
}

// Report is the per-participant detail page.
type Report struct {
	Row
	TimeTakenSec int               `json:"time_taken_sec"`
	Questions    []QuestionOutcome `json:"questions"`
}

func (r Report) Tally() (correct, incorrect int) {
	for _, q := range r.Questions {
		if q.Correct() {
			correct++
		} else {
			incorrect++
		}
	}
	return correct, incorrect
}

func (r Report) Performance() string { return Performance(r.Percentage) }
