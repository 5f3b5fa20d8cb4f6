// File: lixenwraith/hparams/doc.go

// Package hparams declares named, typed parameters for machine learning
// programs and exports them to a command-line flag set and to a
// hyperparameter search space.
//
// Features:
//   - Ordered, name-keyed collections with union and difference
//   - Search strategy per parameter: constant, choice, uniform, loguniform
//   - Export to spf13/pflag flag sets, import from pflag or standard flag sets
//   - Export of searchable parameters to a space.Space descriptor
//   - Declarations from YAML, JSON or TOML files, and from tagged structs
//   - Atomic save back to any of the supported file formats
//
// Quick Start:
//
//	params := hparams.New().
//	    MustAdd("epochs", hparams.Int, hparams.WithDefault(10)).
//	    MustAdd("dropout", hparams.Float,
//	        hparams.WithStrategy(hparams.Choice),
//	        hparams.WithChoices(0.0, 0.1, 0.2))
//
//	fs, err := params.AddTuneFlags(nil) // --epochs only
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = fs.Parse(os.Args[1:])
//
//	searchSpace := params.TuneConfig() // dropout only
//
// Declaration files map parameter names to their declaration:
//
//	dropout:
//	  type: float
//	  choices: [0.0, 0.1, 0.2]
//	  strategy: choice
//	learning_rate:
//	  type: float
//	  default: 0.01
//	  choices: [0.0001, 0.1]
//	  strategy: loguniform
//	  description: optimizer step size
//
// Duplicate names are not errors: the later declaration replaces the earlier
// one in place and a warning is logged through zerolog.
//
// Concurrency:
// A Configs is a plain in-memory value without locking. Callers sharing one
// between goroutines must serialize access.
package hparams
