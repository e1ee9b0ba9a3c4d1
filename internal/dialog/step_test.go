package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_HappyPath(t *testing.T) {
	sess := &Session{ChatID: 1, State: StateDiagAge}

	outcome, reply := Advance(sess, "6")
	assert.Equal(t, StepContinue, outcome)
	assert.Equal(t, QuestionNaps, reply)
	assert.Equal(t, StateDiagNaps, sess.State)

	outcome, reply = Advance(sess, "2")
	assert.Equal(t, StepContinue, outcome)
	assert.Equal(t, QuestionBedtime, reply)

	outcome, reply = Advance(sess, "19h30")
	assert.Equal(t, StepContinue, outcome)
	assert.Equal(t, QuestionWakes, reply)

	outcome, reply = Advance(sess, "1")
	require.Equal(t, StepDone, outcome)
	assert.Equal(t, Recommend(6, 2, "19h30", 1), reply)
}

func TestAdvance_InvalidIntegerDoesNotAdvance(t *testing.T) {
	for _, state := range []State{StateDiagAge, StateDiagNaps, StateDiagWakes} {
		sess := &Session{ChatID: 1, State: state}
		before := *sess

		outcome, reply := Advance(sess, "beaucoup")

		assert.Equal(t, StepContinue, outcome, "state %s", state)
		assert.Equal(t, retryNumber, reply, "state %s", state)
		// стадия и собранные ответы не тронуты
		assert.Equal(t, before, *sess, "state %s", state)
	}
}

func TestAdvance_BedtimeAcceptsFreeText(t *testing.T) {
	sess := &Session{ChatID: 1, State: StateDiagBedtime}

	outcome, _ := Advance(sess, "vers 20h, parfois plus tard")

	assert.Equal(t, StepContinue, outcome)
	assert.Equal(t, "vers 20h, parfois plus tard", sess.BedtimeText)
	assert.Equal(t, StateDiagWakes, sess.State)
}

func TestAdvance_CancelFromAnyStage(t *testing.T) {
	for _, state := range []State{StateDiagAge, StateDiagNaps, StateDiagBedtime, StateDiagWakes} {
		sess := &Session{ChatID: 1, State: state}

		outcome, reply := Advance(sess, "cancel")

		assert.Equal(t, StepCancelled, outcome, "state %s", state)
		assert.Empty(t, reply, "рекомендации при отмене быть не должно")
	}

	// регистр не важен
	sess := &Session{ChatID: 1, State: StateDiagAge}
	outcome, _ := Advance(sess, "CANCEL")
	assert.Equal(t, StepCancelled, outcome)
}

func TestAdvance_TrimsInput(t *testing.T) {
	sess := &Session{ChatID: 1, State: StateDiagAge}

	outcome, _ := Advance(sess, "  6  ")

	assert.Equal(t, StepContinue, outcome)
	assert.Equal(t, 6, sess.AgeMonths)
}
