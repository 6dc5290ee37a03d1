package service

import "errors"

var errEmptyID = errors.New("identifier is required")
