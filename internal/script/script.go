package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is a parsed edit script.
type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Only the fields relevant to Op are read.
type Step struct {
	Op string `yaml:"op"`

	ID      string `yaml:"id,omitempty"`
	Name    string `yaml:"name,omitempty"`
	Kind    string `yaml:"kind,omitempty"`
	Track   string `yaml:"track,omitempty"`
	ToTrack string `yaml:"to_track,omitempty"`
	Clip    string `yaml:"clip,omitempty"`
	Other   string `yaml:"other,omitempty"`
	Effect  string `yaml:"effect,omitempty"`
	Media   string `yaml:"media,omitempty"`
	Bin     string `yaml:"bin,omitempty"`
	Path    string `yaml:"path,omitempty"`

	Start     *int64  `yaml:"start,omitempty"`
	End       *int64  `yaml:"end,omitempty"`
	SourceIn  *int64  `yaml:"source_in,omitempty"`
	SourceOut *int64  `yaml:"source_out,omitempty"`
	Frame     *int64  `yaml:"frame,omitempty"`
	Duration  int64   `yaml:"duration,omitempty"`
	FrameRate float64 `yaml:"frame_rate,omitempty"`

	Index *int `yaml:"index,omitempty"`
	From  *int `yaml:"from,omitempty"`
	To    *int `yaml:"to,omitempty"`

	Param  string      `yaml:"param,omitempty"`
	Type   string      `yaml:"type,omitempty"`
	Value  string      `yaml:"value,omitempty"`
	Mode   string      `yaml:"mode,omitempty"`
	Params []ParamSpec `yaml:"params,omitempty"`

	Enabled *bool    `yaml:"enabled,omitempty"`
	Muted   *bool    `yaml:"muted,omitempty"`
	Locked  *bool    `yaml:"locked,omitempty"`
	Hidden  *bool    `yaml:"hidden,omitempty"`
	Volume  *float64 `yaml:"volume,omitempty"`
	Pan     *float64 `yaml:"pan,omitempty"`

	Text  string     `yaml:"text,omitempty"`
	X     *float64   `yaml:"x,omitempty"`
	Y     *float64   `yaml:"y,omitempty"`
	Size  float64    `yaml:"size,omitempty"`
	Color string     `yaml:"color,omitempty"`
	Note  string     `yaml:"note,omitempty"`
	Grade *GradeSpec `yaml:"grade,omitempty"`
}

// ParamSpec declares one effect parameter in an add_effect step.
type ParamSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type,omitempty"`
	Value string `yaml:"value"`
}

// GradeSpec is the color grade of a set_grade step. Colors are hex strings;
// empty colors stay neutral.
type GradeSpec struct {
	Exposure    float64  `yaml:"exposure,omitempty"`
	Contrast    *float64 `yaml:"contrast,omitempty"`
	Saturation  *float64 `yaml:"saturation,omitempty"`
	Temperature float64  `yaml:"temperature,omitempty"`
	Tint        float64  `yaml:"tint,omitempty"`
	Lift        string   `yaml:"lift,omitempty"`
	Gamma       string   `yaml:"gamma,omitempty"`
	Gain        string   `yaml:"gain,omitempty"`
}

// Parse decodes a script. Unknown fields and unknown ops are errors.
func Parse(data []byte) (*Script, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var s Script
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse script: empty document")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i := range s.Steps {
		step := &s.Steps[i]
		step.Op = strings.ToLower(strings.TrimSpace(step.Op))
		if !knownOp(step.Op) {
			return nil, &StepError{Step: i + 1, Op: step.Op, Err: fmt.Errorf("unknown op %q", step.Op)}
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// StepError reports the step that stopped a run.
type StepError struct {
	Step int
	Op   string
	Err  error
}

func (e *StepError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("step %d: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
