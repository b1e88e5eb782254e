// Package bankfile loads the question bank from a TOML seed file. The file
// holds one [[question]] table per question:
//
//	[[question]]
//	chapter = "ethics"
//	question = "Which principle requires informed consent?"
//	choice_a = "Autonomy"
//	choice_b = "Justice"
//	correct_answer = "a"
//	explanation = "Informed consent follows from respect for autonomy."
package bankfile

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/arcadeprep/backend/internal/domain/question"
)

type fileQuestion struct {
	Chapter       string `toml:"chapter"`
	Prompt        string `toml:"question"`
	ChoiceA       string `toml:"choice_a"`
	ChoiceB       string `toml:"choice_b"`
	ChoiceC       string `toml:"choice_c"`
	ChoiceD       string `toml:"choice_d"`
	CorrectAnswer string `toml:"correct_answer"`
	Explanation   string `toml:"explanation"`
}

type bankFile struct {
	Questions []fileQuestion `toml:"question"`
}

// Load reads and parses the seed file at path.
func Load(path string) ([]*question.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML question bank from r. Every question is validated;
// a single bad entry fails the whole load so a broken seed file is caught
// at startup rather than mid-session.
func Parse(r io.Reader) ([]*question.Question, error) {
	var file bankFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("seed file contains no questions")
	}

	questions := make([]*question.Question, 0, len(file.Questions))
	for i, fq := range file.Questions {
		q, err := question.New(fq.Chapter, fq.Prompt, fq.ChoiceA, fq.ChoiceB, fq.ChoiceC, fq.ChoiceD, fq.CorrectAnswer, fq.Explanation)
		if err != nil {
			return nil, fmt.Errorf("question %d (%q): %w", i+1, fq.Prompt, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
