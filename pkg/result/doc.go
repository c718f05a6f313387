// Package result provides a small error-as-value wrapper.
//
// It lets long-running loops capture a fallible call's outcome as a single
// value and branch on it without aborting, e.g.:
//
//	r := result.Of(store.Delete(ctx, stream, id))
//	if r.Err() != nil {
//	    logger.Warn("cleanup failed", log.Err(r.Err()))
//	    continue
//	}
package result
