package catalog

// Grade is a school year the learner picks first.
type Grade struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// Subject groups topics (e.g. Mathematics, Coding).
type Subject struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Introduction string `yaml:"introduction"`
	Icon         string `yaml:"icon"`
}

// Topic is an ordered set of subtopics within a subject.
type Topic struct {
	ID          string     `yaml:"id"`
	SubjectID   string     `yaml:"subject_id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Level       int        `yaml:"level"`
	Subtopics   []Subtopic `yaml:"subtopics"`
}

// Subtopic is a single lesson. Completed is seed data shipped with the
// content, not derived from progress.
type Subtopic struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Completed   bool   `yaml:"completed"`
}

// Card is one page of lesson content.
type Card struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Image string `yaml:"image,omitempty"`
}

// Question is a multiple-choice quiz question.
type Question struct {
	Prompt        string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Explanation   string   `yaml:"explanation"`
}

// QuizKind selects which quiz of a topic is served.
type QuizKind string

const (
	QuizMid  QuizKind = "mid"
	QuizMain QuizKind = "main"
	QuizExam QuizKind = "exam"
)

// Position is a marker location in percent of the map width and height.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Country is a map explorer entry.
type Country struct {
	ID          string   `yaml:"id"`
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Capital     string   `yaml:"capital"`
	Population  int64    `yaml:"population"`
	Area        int64    `yaml:"area"`
	Currency    string   `yaml:"currency"`
	Description string   `yaml:"description"`
	Facts       []string `yaml:"facts"`
	Position    Position `yaml:"position"`
}

// PythonLesson is a coding exercise with starter code.
type PythonLesson struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Instructions string `yaml:"instructions"`
	Example      string `yaml:"example"`
	Challenge    string `yaml:"challenge"`
	StartingCode string `yaml:"starting_code"`
}

// bundle is the shape of a content YAML file. Every section is optional;
// entries are merged by id into the catalog.
type bundle struct {
	Grades         []Grade                            `yaml:"grades"`
	Subjects       []Subject                          `yaml:"subjects"`
	Topics         []Topic                            `yaml:"topics"`
	Content        map[string][]Card                  `yaml:"content"`
	DefaultContent []Card                             `yaml:"default_content"`
	Quizzes        map[string]map[QuizKind][]Question `yaml:"quizzes"`
	DefaultQuiz    []Question                         `yaml:"default_quiz"`
	Countries      []Country                          `yaml:"countries"`
	PythonLessons  []PythonLesson                     `yaml:"python_lessons"`
}
