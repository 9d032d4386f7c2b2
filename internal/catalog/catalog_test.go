package catalog_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/suguru-ai/smartclass/internal/catalog"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestLoad_Embedded(t *testing.T) {
	c := loadCatalog(t)

	if got := len(c.Grades()); got != 9 {
		t.Errorf("len(Grades()) = %d, want 9", got)
	}
	if got := len(c.Subjects()); got != 6 {
		t.Errorf("len(Subjects()) = %d, want 6", got)
	}
	if got := len(c.Countries()); got != 8 {
		t.Errorf("len(Countries()) = %d, want 8", got)
	}
	if got := len(c.PythonLessons()); got != 6 {
		t.Errorf("len(PythonLessons()) = %d, want 6", got)
	}

	grades := c.Grades()
	if grades[0].ID != "primary1" || grades[8].ID != "jhs3" {
		t.Errorf("grade order = %s..%s, want primary1..jhs3", grades[0].ID, grades[8].ID)
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"known grade", c.GradeName("jhs1"), "JHS 1"},
		{"unknown grade", c.GradeName("nope"), "Grade"},
		{"known subject", c.SubjectName("mathematics"), "Mathematics"},
		{"unknown subject", c.SubjectName("nope"), "Subject"},
		{"known topic", c.TopicTitle("math-fractions"), "Fractions & Decimals"},
		{"unknown topic", c.TopicTitle("nope"), "Topic"},
		{"known subtopic", c.SubtopicTitle("math-numbers", "addition"), "Addition"},
		{"unknown subtopic", c.SubtopicTitle("math-numbers", "nope"), "Subtopic"},
		{"subtopic of unknown topic", c.SubtopicTitle("nope", "addition"), "Subtopic"},
		{"subject introduction", c.SubjectIntroduction("coding"), "Learn programming fundamentals and computational thinking through hands-on coding exercises."},
		{"unknown subject introduction", c.SubjectIntroduction("nope"), "Explore this subject through interactive lessons and engaging content."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestCatalog_SeedCompletedFlags(t *testing.T) {
	c := loadCatalog(t)

	counting, _ := c.Subtopic("math-numbers", "counting")
	if !counting.Completed {
		t.Error("counting should be seeded as completed")
	}
	subtraction, _ := c.Subtopic("math-numbers", "subtraction")
	if subtraction.Completed {
		t.Error("subtraction should not be seeded as completed")
	}
}

func TestCatalog_TopicsForSubject_OrderedByLevel(t *testing.T) {
	c := loadCatalog(t)

	topics := c.TopicsForSubject("mathematics")
	var ids []string
	for _, tp := range topics {
		ids = append(ids, tp.ID)
	}
	want := []string{"math-numbers", "math-fractions", "math-geometry"}
	if !slices.Equal(ids, want) {
		t.Errorf("TopicsForSubject(mathematics) = %v, want %v", ids, want)
	}

	if got := c.TopicsForSubject("nope"); len(got) != 0 {
		t.Errorf("TopicsForSubject(nope) = %v, want empty", got)
	}
}

func TestCatalog_NextTopic(t *testing.T) {
	c := loadCatalog(t)

	next, ok := c.NextTopic("math-numbers")
	if !ok || next.ID != "math-fractions" {
		t.Errorf("NextTopic(math-numbers) = %q, %v; want math-fractions", next.ID, ok)
	}

	if _, ok := c.NextTopic("math-geometry"); ok {
		t.Error("NextTopic(math-geometry) should not cross into another subject")
	}
	if _, ok := c.NextTopic("nope"); ok {
		t.Error("NextTopic(nope) should report false")
	}
}

func TestCatalog_ContentFallback(t *testing.T) {
	c := loadCatalog(t)

	cards := c.ContentFor("counting")
	if len(cards) != 3 || cards[0].Title != "Introduction to Counting" {
		t.Errorf("ContentFor(counting) = %d cards, first %q", len(cards), cards[0].Title)
	}

	fallback := c.ContentFor("photosynthesis")
	var titles []string
	for _, card := range fallback {
		titles = append(titles, card.Title)
	}
	want := []string{"Introduction", "Key Concepts", "Practice Makes Perfect"}
	if !slices.Equal(titles, want) {
		t.Errorf("ContentFor(unknown) titles = %v, want %v", titles, want)
	}
}

func TestCatalog_QuizFallback(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		topic string
		kind  catalog.QuizKind
		want  int
		first string
	}{
		{"math-numbers", catalog.QuizMid, 3, "What comes after 7 when counting?"},
		{"math-numbers", catalog.QuizMain, 4, "What is 5 + 3?"},
		{"math-numbers", catalog.QuizExam, 5, "If you have 15 apples and give away 7, how many do you have left?"},
		{"code-basics", catalog.QuizMain, 4, "What is a string in Python?"},
		{"maps-africa", catalog.QuizExam, 5, "Which African country was never colonized by European powers?"},
		{"sci-living", catalog.QuizMain, 3, "What is the main purpose of learning?"},
	}

	for _, tt := range tests {
		t.Run(tt.topic+"/"+string(tt.kind), func(t *testing.T) {
			q := c.QuizFor(tt.topic, tt.kind)
			if len(q) != tt.want {
				t.Fatalf("len = %d, want %d", len(q), tt.want)
			}
			if q[0].Prompt != tt.first {
				t.Errorf("first prompt = %q, want %q", q[0].Prompt, tt.first)
			}
			for _, question := range q {
				if !slices.Contains(question.Options, question.CorrectAnswer) {
					t.Errorf("%q: correct answer %q not among options", question.Prompt, question.CorrectAnswer)
				}
			}
		})
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := loadCatalog(t)

	cards := c.ContentFor("counting")
	cards[0].Title = "changed"
	if c.ContentFor("counting")[0].Title == "changed" {
		t.Error("ContentFor() exposes internal slice")
	}
}

func TestCatalog_Countries(t *testing.T) {
	c := loadCatalog(t)

	ng, ok := c.Country("ng")
	if !ok {
		t.Fatal("Country(ng) not found")
	}
	if ng.Capital != "Abuja" || ng.Population != 206139589 || ng.Area != 923768 {
		t.Errorf("Country(ng) = %+v", ng)
	}
	if ng.Position.X != 47 || ng.Position.Y != 45 {
		t.Errorf("Country(ng).Position = %+v, want {47 45}", ng.Position)
	}
	if len(ng.Facts) != 4 {
		t.Errorf("len(Facts) = %d, want 4", len(ng.Facts))
	}
}

func TestCatalog_PythonLessonIndex(t *testing.T) {
	c := loadCatalog(t)

	if got := c.PythonLessonIndex("loops"); got != 4 {
		t.Errorf("PythonLessonIndex(loops) = %d, want 4", got)
	}
	if got := c.PythonLessonIndex("unknown"); got != 0 {
		t.Errorf("PythonLessonIndex(unknown) = %d, want 0", got)
	}

	intro, ok := c.PythonLesson("intro")
	if !ok || intro.StartingCode != `print("Hello, World!")` {
		t.Errorf("PythonLesson(intro).StartingCode = %q", intro.StartingCode)
	}
}

func TestCatalog_SubjectLessons(t *testing.T) {
	c := loadCatalog(t)

	math := c.SubjectLessons("mathematics")
	if len(math) != 9 {
		t.Errorf("len(SubjectLessons(mathematics)) = %d, want 9", len(math))
	}
	if math[0] != "math-numbers-counting" {
		t.Errorf("first math lesson = %q, want math-numbers-counting", math[0])
	}

	coding := c.SubjectLessons("coding")
	if coding[0] != "coding-code-basics-intro" {
		t.Errorf("first coding lesson = %q, want coding-code-basics-intro", coding[0])
	}

	subject, ok := c.SubjectOfLesson("eng-writing-grammar")
	if !ok || subject != "english" {
		t.Errorf("SubjectOfLesson(eng-writing-grammar) = %q, %v", subject, ok)
	}
	if _, ok := c.SubjectOfLesson("nope"); ok {
		t.Error("SubjectOfLesson(nope) should report false")
	}
}

func TestLoad_OverrideDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "grades.yaml"), `
grades:
  - id: primary1
    name: Class One
    icon: book
  - id: shs1
    name: SHS 1
    icon: users
`)
	writeFile(t, filepath.Join(dir, "nested", "quiz.yml"), `
quizzes:
  sci-living:
    main:
      - question: What do plants need to make food?
        options: [Sunlight, Sand, Plastic]
        correct_answer: Sunlight
`)

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := c.GradeName("primary1"); got != "Class One" {
		t.Errorf("overridden grade name = %q, want Class One", got)
	}
	grades := c.Grades()
	if len(grades) != 10 || grades[0].ID != "primary1" || grades[9].ID != "shs1" {
		t.Errorf("grades after override = %d, first %s last %s", len(grades), grades[0].ID, grades[len(grades)-1].ID)
	}

	q := c.QuizFor("sci-living", catalog.QuizMain)
	if len(q) != 1 || q[0].CorrectAnswer != "Sunlight" {
		t.Errorf("QuizFor(sci-living, main) = %+v", q)
	}
	if got := c.QuizFor("sci-living", catalog.QuizExam); len(got) != 3 {
		t.Errorf("QuizFor(sci-living, exam) should still fall back, got %d questions", len(got))
	}
}

func TestLoad_OverrideDir_SkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad-schema.yaml"), `
grades:
  - id: Primary One
    name: bad id
`)
	writeFile(t, filepath.Join(dir, "bad-yaml.yaml"), "grades: [unterminated")
	writeFile(t, filepath.Join(dir, "unknown-section.yaml"), "teachers: []\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "# not content")

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(c.Grades()); got != 9 {
		t.Errorf("len(Grades()) = %d, want 9 (invalid files skipped)", got)
	}
}

func TestLoad_OverrideDir_SubjectIntroductionFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "subjects.yaml"), `
subjects:
  - id: music
    name: Music
    description: Rhythm, melody and singing
`)

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.SubjectIntroduction("music"); got != "Rhythm, melody and singing" {
		t.Errorf("SubjectIntroduction(music) = %q, want the description", got)
	}
}

func TestLoad_OverrideDir_LogsUnreadableFiles(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(dir, "gone.yaml"), filepath.Join(dir, "broken.yaml")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(c.Grades()); got != 9 {
		t.Errorf("len(Grades()) = %d, want 9", got)
	}
	if !strings.Contains(logs.String(), "skipping unreadable content file") || !strings.Contains(logs.String(), "broken.yaml") {
		t.Errorf("expected a warning for broken.yaml, logs:\n%s", logs.String())
	}
}

func TestLoad_MissingOverrideDir(t *testing.T) {
	if _, err := catalog.Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing override directory")
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want catalog.Location
	}{
		{"primary1/mathematics/math-numbers/counting", catalog.Location{GradeID: "primary1", SubjectID: "mathematics", TopicID: "math-numbers", SubtopicID: "counting"}},
		{"/primary1/mathematics/", catalog.Location{GradeID: "primary1", SubjectID: "mathematics"}},
		{"jhs2", catalog.Location{GradeID: "jhs2"}},
		{"", catalog.Location{}},
		{"a/b/c/d/e", catalog.Location{GradeID: "a", SubjectID: "b", TopicID: "c", SubtopicID: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := catalog.ParsePath(tt.path)
			if got != tt.want {
				t.Errorf("ParsePath(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}

	if got := catalog.ParsePath("/jhs1/coding/").String(); got != "jhs1/coding" {
		t.Errorf("String() = %q, want jhs1/coding", got)
	}
}

func TestIDs(t *testing.T) {
	if got := catalog.LessonID("math-numbers", "counting"); got != "math-numbers-counting" {
		t.Errorf("LessonID() = %q", got)
	}
	if got := catalog.QuizID("math-numbers", "counting"); got != "math-numbers-counting-quiz" {
		t.Errorf("QuizID() = %q", got)
	}
	if got := catalog.CodingLessonID("code-basics", "intro"); got != "coding-code-basics-intro" {
		t.Errorf("CodingLessonID() = %q", got)
	}
}

func TestPlainText(t *testing.T) {
	in := `<p>Python is great because:</p>
<ul>
  <li>It's easy</li>
  <li>It&#39;s fun &amp; free</li>
</ul>
<p><strong>Fun fact</strong>: named after Monty Python.</p>`

	got := catalog.PlainText(in)
	for _, want := range []string{"Python is great because:", "  • It's easy", "  • It's fun & free", "Fun fact: named after Monty Python."} {
		if !strings.Contains(got, want) {
			t.Errorf("PlainText() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<") {
		t.Errorf("PlainText() left tags in:\n%s", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
