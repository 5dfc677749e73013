// Package njoy hands a tape to the NJOY nuclear data processing code and
// reads back what it produces.
//
// A run writes the tape to tape20 in a fresh temporary directory, feeds NJOY
// an input deck built by BuildInput on stdin, and parses tape30 (the PENDF)
// or tape33 (the ERRORR covariances) from the same directory. ACE runs keep
// tape50 and tape70 as raw bytes instead. The directory is removed when the
// run ends.
//
//	cfg, err := njoy.LoadConfig("njoy.yaml")
//	if err != nil {
//	    return err
//	}
//	r, err := njoy.NewRunner(cfg)
//	if err != nil {
//	    return err
//	}
//	res, err := r.Pendf(ctx, endf)
//
// A zero temperature stops processing after RECONR: BROADR, THERMR, HEATR,
// GASPR, PURR and UNRESR are skipped whatever the configuration says.
package njoy
