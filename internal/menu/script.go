package menu

import "fmt"

// Script is a deterministic UI for tests. Answers are consumed in order; a
// Cancel answer produces ErrCancelled, and running out of answers fails loudly
// so a test never hangs on an unexpected prompt.
type Script struct {
	answers []scriptAnswer

	// Prompts records every prompt shown, in order, for assertions.
	Prompts []string
	// Said records every Say/Ack message, in order.
	Said []string
}

type scriptKind int

const (
	answerChoice scriptKind = iota
	answerText
	answerBool
	answerCancel
)

type scriptAnswer struct {
	kind scriptKind
	text string
	ok   bool
}

// Choose queues a Select answer.
func (s *Script) Choose(choice string) *Script {
	s.answers = append(s.answers, scriptAnswer{kind: answerChoice, text: choice})
	return s
}

// Type queues an Input answer.
func (s *Script) Type(text string) *Script {
	s.answers = append(s.answers, scriptAnswer{kind: answerText, text: text})
	return s
}

// Answer queues a Confirm answer.
func (s *Script) Answer(yes bool) *Script {
	s.answers = append(s.answers, scriptAnswer{kind: answerBool, ok: yes})
	return s
}

// Cancel queues a cancellation for the next prompt of any kind.
func (s *Script) Cancel() *Script {
	s.answers = append(s.answers, scriptAnswer{kind: answerCancel})
	return s
}

func (s *Script) next(prompt string) (scriptAnswer, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.answers) == 0 {
		return scriptAnswer{}, fmt.Errorf("menu: script exhausted at prompt %q", prompt)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Select implements UI.
func (s *Script) Select(prompt string, choices []string) (string, error) {
	if err := validateChoices(choices); err != nil {
		return "", err
	}
	answer, err := s.next(prompt)
	if err != nil {
		return "", err
	}
	if answer.kind == answerCancel {
		return "", ErrCancelled
	}
	if answer.kind != answerChoice {
		return "", fmt.Errorf("menu: script expected a Choose answer at prompt %q", prompt)
	}
	for _, choice := range choices {
		if choice == answer.text {
			return choice, nil
		}
	}
	return "", fmt.Errorf("menu: scripted choice %q not offered at prompt %q (choices %v)", answer.text, prompt, choices)
}

// Input implements UI.
func (s *Script) Input(prompt string) (string, error) {
	answer, err := s.next(prompt)
	if err != nil {
		return "", err
	}
	if answer.kind == answerCancel {
		return "", ErrCancelled
	}
	if answer.kind != answerText {
		return "", fmt.Errorf("menu: script expected a Type answer at prompt %q", prompt)
	}
	return answer.text, nil
}

// Confirm implements UI.
func (s *Script) Confirm(prompt string) (bool, error) {
	answer, err := s.next(prompt)
	if err != nil {
		return false, err
	}
	if answer.kind == answerCancel {
		return false, ErrCancelled
	}
	if answer.kind != answerBool {
		return false, fmt.Errorf("menu: script expected an Answer at prompt %q", prompt)
	}
	return answer.ok, nil
}

// Ack implements UI.
func (s *Script) Ack(message string) {
	if message != "" {
		s.Said = append(s.Said, message)
	}
}

// Say implements UI.
func (s *Script) Say(message string) {
	s.Said = append(s.Said, message)
}

// Warn implements UI; warnings land in Said like any other message.
func (s *Script) Warn(message string) {
	s.Said = append(s.Said, message)
}

// Busy implements UI; it runs fn immediately without rendering.
func (s *Script) Busy(label string, fn func() error) error {
	return fn()
}
