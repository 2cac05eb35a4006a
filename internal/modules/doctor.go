package modules

import (
	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/doctor"
)

func doctorTool(d Deps) error {
	sum := doctor.RunTo(d.Out, doctor.Inputs{
		Probed:     d.Probed,
		Effective:  d.Env(),
		ConfigPath: d.ConfigPath(),
		LogPath:    d.LogPath,
	})
	d.Log.Info("health check", zap.Int("issues", sum.Issues), zap.Int("warnings", sum.Warnings))
	return nil
}
