package vecmat

import "errors"

// ErrSingular indicates a matrix with zero determinant was inverted.
var ErrSingular = errors.New("vecmat: singular matrix (zero determinant)")
