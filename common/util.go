package common

import (
	"errors"
	"sync"
)

// RunParallel runs every function in its own goroutine, waits for all of
// them and returns how many failed together with the joined errors.
func RunParallel(funcs ...func() error) (int, error) {
	var wg sync.WaitGroup
	errs := make(chan error, len(funcs))

	for _, fn := range funcs {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				errs <- err
			}
		}(fn)
	}

	wg.Wait()
	close(errs)

	var allErrs []error
	for err := range errs {
		allErrs = append(allErrs, err)
	}
	return len(allErrs), errors.Join(allErrs...)
}
