package domain

import "errors"

// ErrCourseNotFound the directory has no course with the identifier
var ErrCourseNotFound = errors.New("Course not found")

// ErrModuleNotFound the course exists but has no such module
var ErrModuleNotFound = errors.New("Module not found")

// ErrUnauthorized the viewer has no usable credential
var ErrUnauthorized = errors.New("Viewer is not signed in")

// ErrServiceUnavailable an upstream service failed or could not be reached
var ErrServiceUnavailable = errors.New("Course service is unavailable")
