package catalog

import "strings"

// Location is a navigation position, one path segment per level:
// grade/subject/topic/subtopic.
type Location struct {
	GradeID    string
	SubjectID  string
	TopicID    string
	SubtopicID string
}

// ParsePath splits a slash-separated navigation path. Missing trailing
// segments are left empty; extra segments are ignored.
func ParsePath(path string) Location {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return Location{
		GradeID:    get(0),
		SubjectID:  get(1),
		TopicID:    get(2),
		SubtopicID: get(3),
	}
}

// String renders the location back to a path, stopping at the first empty segment.
func (l Location) String() string {
	var parts []string
	for _, p := range []string{l.GradeID, l.SubjectID, l.TopicID, l.SubtopicID} {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "/")
}

// LessonID is the progress id of a subtopic lesson.
func LessonID(topicID, subtopicID string) string {
	return topicID + "-" + subtopicID
}

// QuizID is the progress id of a subtopic's main quiz.
func QuizID(topicID, subtopicID string) string {
	return topicID + "-" + subtopicID + "-quiz"
}

// CodingLessonID is the progress id of a coding exercise.
func CodingLessonID(topicID, subtopicID string) string {
	return "coding-" + topicID + "-" + subtopicID
}
