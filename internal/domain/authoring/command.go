package authoring

import (
	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// Op имя команды редактора
type Op string

const (
	OpAddQuestion        Op = "add_question"
	OpRemoveQuestion     Op = "remove_question"
	OpSelect             Op = "select"
	OpSetQuestionKind    Op = "set_question_kind"
	OpEditQuestionText   Op = "edit_question_text"
	OpEditOption         Op = "edit_option"
	OpSetCorrectOption   Op = "set_correct_option"
	OpSetReferenceAnswer Op = "set_reference_answer"
	OpSetMetadata        Op = "set_metadata"
)

// ErrUnknownOp неизвестная команда
var ErrUnknownOp = errors.New("unknown editor command")

// Command одна команда редактора в сериализуемом виде
type Command struct {
	Op       Op         `json:"op"`
	Index    int        `json:"index"`
	Option   int        `json:"option"`
	Kind     model.Kind `json:"kind,omitempty"`
	Text     string     `json:"text,omitempty"`
	Metadata *Metadata  `json:"metadata,omitempty"`
}

// Apply применяет команду к редактору
func (e *Editor) Apply(cmd Command) error {
	switch cmd.Op {
	case OpAddQuestion:
		e.AddQuestion()
	case OpRemoveQuestion:
		e.RemoveQuestion(cmd.Index)
	case OpSelect:
		e.Select(cmd.Index)
	case OpSetQuestionKind:
		e.SetQuestionKind(cmd.Index, cmd.Kind)
	case OpEditQuestionText:
		e.EditQuestionText(cmd.Index, cmd.Text)
	case OpEditOption:
		e.EditOption(cmd.Index, cmd.Option, cmd.Text)
	case OpSetCorrectOption:
		e.SetCorrectOption(cmd.Index, cmd.Option)
	case OpSetReferenceAnswer:
		e.SetReferenceAnswer(cmd.Index, cmd.Text)
	case OpSetMetadata:
		if cmd.Metadata != nil {
			e.SetMetadata(*cmd.Metadata)
		}
	default:
		return errors.Wrapf(ErrUnknownOp, "op %q", cmd.Op)
	}
	return nil
}
