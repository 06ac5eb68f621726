package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytautotest11/auto-youtube/types"
)

func TestStageErrRecordsStageAndPrefixesOnce(t *testing.T) {
	state := &types.BranchState{}
	err := stageErr(state, "narration", errors.New("boom"))

	assert.Equal(t, "narration", state.FailedStage)
	assert.Equal(t, "narration: boom", err.Error())
}

func TestStageOfRecoversRenderStage(t *testing.T) {
	assert.Equal(t, "assemble", stageOf(errors.New("assemble: encode failed")))
	assert.Equal(t, "thumbnail", stageOf(errors.New("thumbnail: drawtext failed")))
	assert.Equal(t, "render", stageOf(errors.New("something else entirely")))
}
