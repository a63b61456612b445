package interview

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/careerkit/career-compass/internal/llm"
	"github.com/careerkit/career-compass/internal/types"
)

// Question-count thresholds per difficulty. Reaching the threshold of
// model turns forces the terminal evaluation on the next call.
const (
	targetTurnsEasy         = 8
	targetTurnsIntermediate = 12
	targetTurnsHard         = 20
)

// DefaultCallTimeout bounds a single LLM call. Exceeding it is fatal for
// the turn and surfaces to the caller.
const DefaultCallTimeout = 30 * time.Second

// startUtterance is the synthetic user turn that opens every session.
const startUtterance = "Please start the interview."

// finishedMessage is returned as the "question" on the terminal turn.
const finishedMessage = "Interview finished! Here is your evaluation."

// endPhrases matches a case-insensitive whole-word request to end the
// interview.
var endPhrases = regexp.MustCompile(`(?i)\b(end|finish|stop|thank you|evaluation)\b`)

// TargetTurns returns the model-turn threshold for a difficulty.
// Unknown difficulties get the easy threshold; callers are expected to
// have validated the config already.
func TargetTurns(d types.Difficulty) int {
	switch d {
	case types.DifficultyIntermediate:
		return targetTurnsIntermediate
	case types.DifficultyHard:
		return targetTurnsHard
	default:
		return targetTurnsEasy
	}
}

// UserRequestedEnd reports whether an utterance asks to end the interview.
func UserRequestedEnd(utterance string) bool {
	return endPhrases.MatchString(utterance)
}

// Controller drives the interview state machine. It performs exactly one
// LLM call per invocation and never retries: a conversational turn is a
// billed call, and transient failures surface to the caller who decides
// whether to resubmit.
type Controller struct {
	client  llm.Client
	timeout time.Duration
}

// NewController creates a controller over an LLM client.
func NewController(client llm.Client) *Controller {
	return &Controller{client: client, timeout: DefaultCallTimeout}
}

// WithTimeout overrides the per-call timeout.
func (c *Controller) WithTimeout(timeout time.Duration) *Controller {
	c.timeout = timeout
	return c
}

// Next advances the session by one turn.
//
// The first call seeds the session with a system turn and a synthetic
// start utterance. Subsequent calls append the user response, decide
// whether to force the terminal evaluation, call the model once, and
// classify the reply. On any error the session is restored to its state
// before the call, so history up to the last successful turn stays
// intact and resumable.
func (c *Controller) Next(ctx context.Context, session *types.Session, userResponse string) (*types.TurnResult, error) {
	if session == nil {
		return nil, &InputError{Field: "session", Message: "session is required"}
	}
	if session.State == types.StateTerminated {
		return nil, &InputError{Field: "session", Message: "session already terminated"}
	}
	if !session.Config.Difficulty.Valid() {
		return nil, &InputError{Field: "difficulty", Message: "unknown difficulty"}
	}
	if strings.TrimSpace(session.Config.JobRole) == "" {
		return nil, &InputError{Field: "job_role", Message: "job role is required"}
	}

	// Snapshot for rollback on failure.
	checkpoint := len(session.Turns)
	priorState := session.State

	utterance := userResponse
	if len(session.Turns) == 0 {
		instruction, err := SystemInstruction(session.Config)
		if err != nil {
			return nil, err
		}
		session.Append(types.SystemTurn(instruction))
		utterance = startUtterance
	}
	session.Append(types.UserTurn(utterance))
	session.State = types.StateInProgress

	forceEvaluation := UserRequestedEnd(utterance) ||
		session.ModelTurnCount() >= TargetTurns(session.Config.Difficulty)

	prompt, err := Assemble(session.Config, session.Turns, forceEvaluation)
	if err != nil {
		session.Turns = session.Turns[:checkpoint]
		session.State = priorState
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.client.GenerateContent(callCtx, prompt, llm.TierPro)
	if err != nil {
		session.Turns = session.Turns[:checkpoint]
		session.State = priorState
		return nil, &APICallError{Message: "interview turn failed", Cause: err}
	}

	session.Append(types.ModelTurn(raw))

	evaluation, err := Extract(raw)
	if err != nil {
		session.Turns = session.Turns[:checkpoint]
		session.State = priorState
		return nil, err
	}

	if evaluation != nil {
		session.State = types.StateTerminated
		return &types.TurnResult{
			Question:   finishedMessage,
			Session:    session,
			Evaluation: evaluation,
		}, nil
	}

	return &types.TurnResult{Question: raw, Session: session}, nil
}
