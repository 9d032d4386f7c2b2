package lesson

import (
	"fmt"

	"github.com/suguru-ai/smartclass/internal/catalog"
)

// Flow is the kind of activity a subject opens.
type Flow int

const (
	FlowLesson Flow = iota
	FlowCoding
	FlowMap
)

func (f Flow) String() string {
	switch f {
	case FlowCoding:
		return "coding"
	case FlowMap:
		return "map"
	default:
		return "lesson"
	}
}

// FlowFor returns the flow a subject uses. Coding and maps have their own.
func FlowFor(subjectID string) Flow {
	switch subjectID {
	case catalog.SubjectCoding:
		return FlowCoding
	case catalog.SubjectMaps:
		return FlowMap
	default:
		return FlowLesson
	}
}

// RedirectError is returned when a location belongs to another flow.
type RedirectError struct {
	Flow     Flow
	Location catalog.Location
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s belongs to the %s flow", e.Location, e.Flow)
}

func (s *Session) introCard() catalog.Card {
	topic := s.topic.Title
	if topic == "" {
		topic = "Topic"
	}
	about := s.topic.Title
	if about == "" {
		about = "this topic"
	}
	description := s.topic.Description
	if description == "" {
		description = "Various concepts related to this topic"
	}
	subtopic := s.subtopic.Title
	if subtopic == "" {
		subtopic = "Subtopic"
	}

	return catalog.Card{
		Title: "Introduction to " + topic,
		Body: fmt.Sprintf(`<p>Welcome to this lesson on %s!</p>
<p>In this module, you will learn about:</p>
<ul>
<li>%s</li>
<li>Key principles and applications</li>
<li>Practical examples and exercises</li>
</ul>
<p>Let's get started with our first subtopic: <strong>%s</strong></p>`, about, description, subtopic),
	}
}

func (s *Session) thankYouCard() catalog.Card {
	title := s.subtopic.Title
	if title == "" {
		title = "This Subtopic"
	}
	description := s.subtopic.Description
	if description == "" {
		description = "Key concepts in this subtopic"
	}

	return catalog.Card{
		Title: "Thank You for Completing " + title,
		Body: fmt.Sprintf(`<p>Congratulations on completing this subtopic!</p>
<p>You've learned about:</p>
<ul>
<li>%s</li>
<li>Important principles and applications</li>
<li>Practical examples and exercises</li>
</ul>
<p>Now it's time to test your knowledge with a quiz!</p>`, description),
	}
}
