package catalog

import (
	"cmp"
	"slices"
)

// Subject ids with their own learning flows.
const (
	SubjectCoding = "coding"
	SubjectMaps   = "maps"
)

// Grades returns all grades in declaration order.
func (c *Catalog) Grades() []Grade {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.grades)
}

// Grade returns a grade by ID.
func (c *Catalog) Grade(id string) (Grade, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.grades, func(g Grade) bool { return g.ID == id })
}

// GradeName returns the display name of a grade, or "Grade" when unknown.
func (c *Catalog) GradeName(id string) string {
	if g, ok := c.Grade(id); ok {
		return g.Name
	}
	return "Grade"
}

// Subjects returns all subjects in declaration order.
func (c *Catalog) Subjects() []Subject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.subjects)
}

// Subject returns a subject by ID.
func (c *Catalog) Subject(id string) (Subject, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.subjects, func(s Subject) bool { return s.ID == id })
}

// SubjectName returns the display name of a subject, or "Subject" when unknown.
func (c *Catalog) SubjectName(id string) string {
	if s, ok := c.Subject(id); ok {
		return s.Name
	}
	return "Subject"
}

const defaultIntroduction = "Explore this subject through interactive lessons and engaging content."

// SubjectIntroduction returns the blurb shown before a subject's topics. It
// falls back to the subject description, then to a generic line.
func (c *Catalog) SubjectIntroduction(id string) string {
	s, ok := c.Subject(id)
	switch {
	case ok && s.Introduction != "":
		return s.Introduction
	case ok && s.Description != "":
		return s.Description
	default:
		return defaultIntroduction
	}
}

// Topic returns a topic by ID.
func (c *Catalog) Topic(id string) (Topic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.topics, func(t Topic) bool { return t.ID == id })
}

// TopicTitle returns the title of a topic, or "Topic" when unknown.
func (c *Catalog) TopicTitle(id string) string {
	if t, ok := c.Topic(id); ok {
		return t.Title
	}
	return "Topic"
}

// TopicsForSubject returns the subject's topics ordered by level. Topics on
// the same level keep their declaration order.
func (c *Catalog) TopicsForSubject(subjectID string) []Topic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var topics []Topic
	for _, t := range c.topics {
		if t.SubjectID == subjectID {
			topics = append(topics, t)
		}
	}
	slices.SortStableFunc(topics, func(a, b Topic) int { return cmp.Compare(a.Level, b.Level) })
	return topics
}

// Subtopic returns a subtopic of a topic.
func (c *Catalog) Subtopic(topicID, subtopicID string) (Subtopic, bool) {
	t, ok := c.Topic(topicID)
	if !ok {
		return Subtopic{}, false
	}
	return find(t.Subtopics, func(s Subtopic) bool { return s.ID == subtopicID })
}

// SubtopicTitle returns the title of a subtopic, or "Subtopic" when unknown.
func (c *Catalog) SubtopicTitle(topicID, subtopicID string) string {
	if s, ok := c.Subtopic(topicID, subtopicID); ok {
		return s.Title
	}
	return "Subtopic"
}

// NextTopic returns the topic after topicID within the same subject, skipping
// topics without subtopics.
func (c *Catalog) NextTopic(topicID string) (Topic, bool) {
	current, ok := c.Topic(topicID)
	if !ok {
		return Topic{}, false
	}

	topics := c.TopicsForSubject(current.SubjectID)
	idx := slices.IndexFunc(topics, func(t Topic) bool { return t.ID == topicID })
	for _, t := range topics[idx+1:] {
		if len(t.Subtopics) > 0 {
			return t, true
		}
	}
	return Topic{}, false
}

// ContentFor returns the lesson cards of a subtopic, falling back to the
// generic cards when the subtopic has no content of its own.
func (c *Catalog) ContentFor(subtopicID string) []Card {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if cards, ok := c.content[subtopicID]; ok {
		return slices.Clone(cards)
	}
	return slices.Clone(c.defaultContent)
}

// QuizFor returns the questions of a topic's quiz, falling back to the
// generic quiz when the topic has none of that kind.
func (c *Catalog) QuizFor(topicID string, kind QuizKind) []Question {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if questions, ok := c.quizzes[topicID][kind]; ok {
		return slices.Clone(questions)
	}
	return slices.Clone(c.defaultQuiz)
}

// Countries returns the map explorer countries.
func (c *Catalog) Countries() []Country {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.countries)
}

// Country returns a country by ID.
func (c *Catalog) Country(id string) (Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.countries, func(x Country) bool { return x.ID == id })
}

// PythonLessons returns the coding lessons in order.
func (c *Catalog) PythonLessons() []PythonLesson {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.pythonLessons)
}

// PythonLesson returns a coding lesson by ID.
func (c *Catalog) PythonLesson(id string) (PythonLesson, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.pythonLessons, func(l PythonLesson) bool { return l.ID == id })
}

// PythonLessonIndex returns the position of a coding lesson. Unknown ids map
// to the first lesson.
func (c *Catalog) PythonLessonIndex(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return max(slices.IndexFunc(c.pythonLessons, func(l PythonLesson) bool { return l.ID == id }), 0)
}

// SubjectLessons returns the lesson ids that make up a subject, in the form
// recorded in the progress record.
func (c *Catalog) SubjectLessons(subjectID string) []string {
	var ids []string
	for _, t := range c.TopicsForSubject(subjectID) {
		for _, s := range t.Subtopics {
			if subjectID == SubjectCoding {
				ids = append(ids, CodingLessonID(t.ID, s.ID))
			} else {
				ids = append(ids, LessonID(t.ID, s.ID))
			}
		}
	}
	return ids
}

// SubjectOfLesson returns the subject a recorded lesson id belongs to.
func (c *Catalog) SubjectOfLesson(lessonID string) (string, bool) {
	c.mu.RLock()
	subjects := slices.Clone(c.subjects)
	c.mu.RUnlock()

	for _, s := range subjects {
		if slices.Contains(c.SubjectLessons(s.ID), lessonID) {
			return s.ID, true
		}
	}
	return "", false
}

func find[T any](list []T, match func(T) bool) (T, bool) {
	if i := slices.IndexFunc(list, match); i >= 0 {
		return list[i], true
	}
	var zero T
	return zero, false
}
