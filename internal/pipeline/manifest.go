package pipeline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Manifest struct {
	GeneratedAt string         `yaml:"generated_at"`
	OutputRoot  string         `yaml:"output_root"`
	Roles       []ManifestRole `yaml:"roles"`
}

type ManifestRole struct {
	Name          string             `yaml:"name"`
	Input         string             `yaml:"input"`
	Stage         string             `yaml:"stage"`
	Error         string             `yaml:"error,omitempty"`
	Width         int                `yaml:"width,omitempty"`
	Height        int                `yaml:"height,omitempty"`
	Channels      int                `yaml:"channels,omitempty"`
	Palette       string             `yaml:"palette,omitempty"`
	Gamut         string             `yaml:"gamut,omitempty"`
	DominantColor string             `yaml:"dominant_color,omitempty"`
	Binarization  []ManifestMethod   `yaml:"binarization,omitempty"`
	Artifacts     []ManifestArtifact `yaml:"artifacts,omitempty"`
}

type ManifestMethod struct {
	Method          string   `yaml:"method"`
	Threshold       *float64 `yaml:"threshold,omitempty"`
	ForegroundRatio float64  `yaml:"foreground_ratio"`
	// AgreementWithOtsu is omitted for the otsu method.
	AgreementWithOtsu *ManifestAgreement `yaml:"agreement_with_otsu,omitempty"`
}

type ManifestAgreement struct {
	Accuracy float64 `yaml:"accuracy"`
	FMeasure float64 `yaml:"f_measure"`
	NRM      float64 `yaml:"nrm"`
	PSNR     float64 `yaml:"psnr"`
}

type ManifestArtifact struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

func NewManifest(summary Summary, generatedAt time.Time) Manifest {
	m := Manifest{
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		OutputRoot:  summary.OutputRoot,
	}

	for _, r := range summary.Results {
		role := ManifestRole{
			Name:  r.Role,
			Input: r.Input,
			Stage: r.Stage.String(),
		}
		if r.Err != nil {
			role.Error = r.Err.Error()
		}

		if r.Report != nil {
			role.Width = r.Report.Width
			role.Height = r.Report.Height
			role.Channels = r.Report.Channels
			role.Palette = string(r.Report.Palette)
			role.Gamut = string(r.Report.Gamut.Kind)
			role.DominantColor = r.Report.DominantColor
		}

		for _, b := range r.Binarizations {
			method := ManifestMethod{Method: b.Method, ForegroundRatio: b.ForegroundRatio}
			if !b.Local {
				threshold := b.Threshold
				method.Threshold = &threshold
			}
			if a := b.Agreement; a != nil {
				method.AgreementWithOtsu = &ManifestAgreement{
					Accuracy: a.Accuracy(),
					FMeasure: a.FMeasure(),
					NRM:      a.NRM(),
					PSNR:     a.PSNR(),
				}
			}
			role.Binarization = append(role.Binarization, method)
		}

		for _, a := range r.Artifacts {
			role.Artifacts = append(role.Artifacts, ManifestArtifact{Kind: a.Kind, Path: a.Path})
		}

		m.Roles = append(m.Roles, role)
	}

	return m
}

func writeManifest(path string, summary Summary, generatedAt time.Time) error {
	data, err := yaml.Marshal(NewManifest(summary, generatedAt))
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}

	return nil
}
