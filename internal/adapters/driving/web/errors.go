package web

import "errors"

var (
	// ErrMissingBrowseService indicates the browse service was not provided.
	ErrMissingBrowseService = errors.New("browse service is required")

	// ErrMissingDetailService indicates the detail service was not provided.
	ErrMissingDetailService = errors.New("detail service is required")
)
