package errorx

import "fmt"

const errCostPrefix = "COST-ERR"

type errCostCode int

type errCost struct {
	code errCostCode
	msg  string
}

func (err errCost) Error() string {
	return err.Code() + ": " + err.msg
}

func (err errCost) Code() string {
	return errCostPrefix + "-" + fmt.Sprintf("%d", err.code)
}

func (err errCost) CustomError() CustomError {
	return CustomError{
		Prefix: errCostPrefix,
		Code:   int(err.code),
	}
}

const (
	pricingNotFound errCostCode = iota + 1
	malformedPricing
	missingMetrics
)

var (
	ErrPricingNotFound  = errCost{code: pricingNotFound, msg: "no pricing for instance type"}
	ErrMalformedPricing = errCost{code: malformedPricing, msg: "malformed pricing entry"}
	ErrMissingMetrics   = errCost{code: missingMetrics, msg: "token metrics are missing"}
)

var errCostMap = map[errCostCode]errCost{
	pricingNotFound:  ErrPricingNotFound,
	malformedPricing: ErrMalformedPricing,
	missingMetrics:   ErrMissingMetrics,
}

func MalformedPricing(err error, ctx context) error {
	return wrap(err, ErrMalformedPricing, ctx)
}
