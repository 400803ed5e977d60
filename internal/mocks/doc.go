// Package mocks provides shared mock implementations of the service
// interfaces for tests in other packages.
//
// Each mock has a function field per method. When the field is nil the mock
// returns its default values. Mocks that sit on the study path also record
// their calls for verification:
//
//	sched := &mocks.MockScheduler{
//	    SubmitGradeFn: func(ctx context.Context, cardID int64, g domain.Grade, at time.Time) (*service.GradeResult, error) {
//	        return nil, store.ErrCardNotFound
//	    },
//	}
//	// ...
//	assert.Equal(t, 1, sched.SubmitGradeCalls.Count())
package mocks
