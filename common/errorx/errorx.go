package errorx

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var errorCodeRegex = regexp.MustCompile(`^([A-Z]+-ERR)-(\d+)$`)

func IsValidErrorCode(code string) bool {
	return errorCodeRegex.MatchString(code)
}

// ParseErrorCode parses the corresponding error object from error code string
// Supports format: "PREFIX-ERR-NUMBER" (e.g.: "PRED-ERR-1", "DEPLOY-ERR-2")
// Returns corresponding CustomError instance, or an unknown error if parsing fails
func ParseErrorCode(errorCode string) CustomError {
	errUnknown := CustomError{
		Prefix: errUnknownPrefix,
		Code:   0,
	}

	matches := errorCodeRegex.FindStringSubmatch(errorCode)
	if len(matches) != 3 {
		return errUnknown
	}

	codeNum, err := strconv.Atoi(matches[2])
	if err != nil {
		return errUnknown
	}

	return CustomError{
		Prefix: matches[1],
		Code:   codeNum,
	}
}

type CoreError interface {
	Error() string
	Code() string
	CustomError() CustomError
}

// CustomError carries an error code and optional context values.
// errors.Is against the matching sentinel (e.g. ErrMissingInputs) works through Unwrap.
type CustomError struct {
	Prefix  string  `json:"prefix"`
	Code    int     `json:"code"`
	Context context `json:"context,omitempty"`
}

func (err CustomError) Error() string {
	return err.Prefix + "-" + fmt.Sprintf("%d", err.Code)
}

func (err CustomError) Detail() string {
	errorMsg := err.Error()
	if len(err.Context) > 0 {
		var auxParts []string
		for key, value := range err.Context {
			auxParts = append(auxParts, fmt.Sprintf("%s:%v", key, value))
		}
		errorMsg += " [" + strings.Join(auxParts, ", ") + "]"
	}

	return errorMsg
}

// used for errors.Is to check error type
func (err CustomError) Unwrap() error {
	switch err.Prefix {
	case errPredictPrefix:
		if e, ok := errPredictMap[errPredictCode(err.Code)]; ok {
			return e
		}
	case errDeployPrefix:
		if e, ok := errDeployMap[errDeployCode(err.Code)]; ok {
			return e
		}
	case errCostPrefix:
		if e, ok := errCostMap[errCostCode(err.Code)]; ok {
			return e
		}
	}
	return ErrUnknown
}

// wrap attaches the custom error of code to err, keeping both in the chain.
func wrap(err error, code CoreError, ctx context) error {
	customErr := code.CustomError()
	customErr.Context = ctx
	if err == nil {
		return customErr
	}
	return fmt.Errorf("%w, %w", err, customErr)
}

// CodeOf returns the error code carried by err, or the unknown code.
func CodeOf(err error) string {
	var ce CoreError
	if errors.As(err, &ce) {
		return ce.Code()
	}
	var custom CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	return ErrUnknown.Code()
}
