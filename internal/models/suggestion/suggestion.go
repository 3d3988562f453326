package suggestion

const (
	FieldMood       = "mood"
	FieldStartSleep = "start_sleep"
	FieldEndSleep   = "end_sleep"
	FieldStartWork  = "start_work"
	FieldEndWork    = "end_work"
)

// Fields в том порядке, в котором они уходят в строку запроса.
var Fields = []string{FieldMood, FieldStartSleep, FieldEndSleep, FieldStartWork, FieldEndWork}

// Request живёт один цикл запрос-редирект и никуда не сохраняется.
type Request struct {
	Mood       string
	StartSleep string
	EndSleep   string
	StartWork  string
	EndWork    string
}

func FromValues(get func(string) string) Request {
	return Request{
		Mood:       get(FieldMood),
		StartSleep: get(FieldStartSleep),
		EndSleep:   get(FieldEndSleep),
		StartWork:  get(FieldStartWork),
		EndWork:    get(FieldEndWork),
	}
}

type Result struct {
	Suggestions []string
	StudyTimes  []string
}
