package tui

import "errors"

// ErrMissingBrowseService is returned when the browse service is not provided.
var ErrMissingBrowseService = errors.New("tui: browse service is required")

// ErrMissingDetailService is returned when the detail service is not provided.
var ErrMissingDetailService = errors.New("tui: detail service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
