package orchestrator

import (
	"github.com/halvard/duplifind/core/cache"
	"github.com/halvard/duplifind/core/driver"
	"github.com/halvard/duplifind/core/group/perceptual"
)

// Mode selects which grouping stages run (§4.9).
type Mode string

const (
	ModeExactOnly      Mode = "EXACT_ONLY"
	ModePerceptualOnly Mode = "PERCEPTUAL_ONLY"
	ModeBoth           Mode = "BOTH"
)

// LSHMode selects the perceptual grouper's candidate-enumeration strategy
// (§4.9), mirroring group/perceptual.Mode under the spec's own names.
type LSHMode string

const (
	LSHAuto     LSHMode = "AUTO"
	LSHForceOn  LSHMode = "FORCE_ON"
	LSHForceOff LSHMode = "FORCE_OFF"
)

func (m LSHMode) toPerceptualMode() perceptual.Mode {
	switch m {
	case LSHForceOn:
		return perceptual.ModeForceLSH
	case LSHForceOff:
		return perceptual.ModeForceBruteForce
	default:
		return perceptual.ModeAuto
	}
}

// Options configures one Scan call (§4.9).
type Options struct {
	Recursive   bool
	Threshold   int
	Mode        Mode
	LSHMode     LSHMode
	UseCache    bool
	Cache       *cache.Store
	Workers     int
	Progress    driver.ProgressFunc
	CancelToken *CancelToken
}

func (o Options) validate(root string) error {
	if !isAbs(root) {
		return badArgument("root must be an absolute path")
	}
	if err := mustBeDir(root); err != nil {
		return err
	}
	if o.Threshold < 0 || o.Threshold > 64 {
		return badArgument("threshold must be within 0..64")
	}
	switch o.Mode {
	case ModeExactOnly, ModePerceptualOnly, ModeBoth:
	default:
		return badArgument("mode must be one of EXACT_ONLY, PERCEPTUAL_ONLY, BOTH")
	}
	switch o.LSHMode {
	case LSHAuto, LSHForceOn, LSHForceOff:
	default:
		return badArgument("lsh_mode must be one of AUTO, FORCE_ON, FORCE_OFF")
	}
	if o.UseCache && o.Cache == nil {
		return badArgument("use_cache is set but no cache store was provided")
	}
	return nil
}
