package logger

import (
	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/harrison/cleanfilenames/internal/rename"
)

func doneCandidate() *models.Candidate {
	return &models.Candidate{
		OldPath: "/roms/Game (USA).nes",
		NewPath: "/roms/Game.nes",
		Type:    models.TypeFile,
		Status:  models.StatusDone,
	}
}

func failedCandidate() *models.Candidate {
	return &models.Candidate{
		OldPath: "/roms/Other (USA).nes",
		NewPath: "/roms/Other.nes",
		Type:    models.TypeFile,
		Status:  models.StatusError,
		Message: "target already exists on disk",
	}
}

func sampleResult() *rename.Result {
	cands := []*models.Candidate{doneCandidate(), failedCandidate()}
	return &rename.Result{
		Root:       "/roms",
		Mode:       rename.ModeApply,
		Candidates: cands,
		Summary:    rename.Summarize(cands),
	}
}
