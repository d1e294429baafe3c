package responses

import "time"

type Lesson struct {
	Week    string `json:"week"`
	Day     int    `json:"day"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
	Notes   string `json:"notes"`
}

type WeekType struct {
	Week string `json:"week"`
}

type DayLessons struct {
	Week    string   `json:"week"`
	Lessons []Lesson `json:"lessons"`
}

// LessonLookup serializes a missing lesson as null, not as an absent key.
type LessonLookup struct {
	Week   string  `json:"week"`
	Lesson *Lesson `json:"lesson"`
}

type SubjectOnDate struct {
	Week    string   `json:"week"`
	Lessons []Lesson `json:"lessons"`
	Date    string   `json:"date"`
}

type Period struct {
	Week     string  `json:"week"`
	Outcome  string  `json:"outcome"`
	Count    int     `json:"count"`
	Position int     `json:"position,omitempty"`
	Lesson   *Lesson `json:"lesson"`
}

type Reload struct {
	Lessons int `json:"lessons"`
}

type TimetableStatus struct {
	Path       string    `json:"path"`
	Source     string    `json:"source"`
	Timezone   string    `json:"tz"`
	WeekAStart string    `json:"weeka_start"`
	Lessons    int       `json:"lessons"`
	LoadedAt   time.Time `json:"loaded_at"`
}
