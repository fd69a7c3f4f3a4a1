package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"personnel-api/internal/domain"
)

const (
	validationPrefix  = "User validation failed: "
	msgPasswordLength = "Password must be at least 9 characters long"
	msgPhoneLength    = "Phone number cannot be shorter than 9 digits or longer than 14"
	msgInvalidDate    = "Invalid date format"
	msgEndBeforeStart = "End time cannot be earlier than start time"
)

var (
	validate = validator.New()

	contractTypeRule = "oneof=" + strings.Join(domain.ContractTypes, " ")
	positionRule     = "oneof=" + strings.Join(domain.Positions, " ")
)

// 可接受的日期写法；只要能解析出日历日期即可
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006/01/02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// candidate 是待写入的合并结果。password 为 nil 表示沿用已存的哈希（只在 update 出现）。
// input 是本次请求体，用来区分“没传”和“传了空串”
type candidate struct {
	user     *domain.User
	password *string
	input    *domain.UserInput
}

// rule 返回空串表示通过
type rule func(c candidate) string

// 顺序即优先级：只报告第一条失败
var userRules = []rule{
	requiredFields,
	passwordLength,
	phoneLength,
	dateFormats,
	contractEnums,
	contractPeriod,
}

func validateUser(c candidate) error {
	for _, r := range userRules {
		if msg := r(c); msg != "" {
			return domain.Validation(msg)
		}
	}
	return nil
}

// requiredFields 是唯一会聚合多条的规则
func requiredFields(c candidate) string {
	fields := []struct{ path, value string }{
		{"name", c.user.Name},
		{"surname", c.user.Surname},
		{"email", c.user.Email},
	}
	var missing []string
	for _, f := range fields {
		if validate.Var(f.value, "required") != nil {
			missing = append(missing, fmt.Sprintf("%s: Path `%s` is required.", f.path, f.path))
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return validationPrefix + strings.Join(missing, ", ")
}

func passwordLength(c candidate) string {
	if c.password == nil {
		return ""
	}
	if validate.Var(*c.password, "min=9") != nil {
		return msgPasswordLength
	}
	return ""
}

func phoneLength(c candidate) string {
	phone := c.user.PhoneNumber
	if phone == "" {
		return ""
	}
	if validate.Var(phone, "min=9,max=14") != nil {
		return msgPhoneLength
	}
	return ""
}

func dateFormats(c candidate) string {
	dates := []string{c.user.BirthDate}
	if ct := c.user.Contract; ct != nil {
		dates = append(dates, ct.StartTime, ct.EndTime)
	}
	for _, d := range dates {
		if d == "" {
			continue
		}
		if _, ok := parseDate(d); !ok {
			return msgInvalidDate
		}
	}
	return ""
}

func contractEnums(c candidate) string {
	ct := c.user.Contract
	if ct == nil {
		return ""
	}
	var sentType, sentPosition *string
	if c.input != nil && c.input.Contract != nil {
		sentType, sentPosition = c.input.Contract.Type, c.input.Contract.Position
	}
	if (ct.Type != "" || sentEmpty(sentType)) && validate.Var(ct.Type, contractTypeRule) != nil {
		return enumMessage("contract.type", ct.Type)
	}
	if (ct.Position != "" || sentEmpty(sentPosition)) && validate.Var(ct.Position, positionRule) != nil {
		return enumMessage("contract.position", ct.Position)
	}
	return ""
}

// 显式传入的空串不是合法枚举值
func sentEmpty(v *string) bool { return v != nil && *v == "" }

func enumMessage(path, value string) string {
	return fmt.Sprintf("%s%s: `%s` is not a valid enum value for path `%s`.", validationPrefix, path, value, path)
}

// contractPeriod 只在两个日期都存在且可解析时生效
func contractPeriod(c candidate) string {
	ct := c.user.Contract
	if ct == nil || ct.StartTime == "" || ct.EndTime == "" {
		return ""
	}
	start, ok1 := parseDate(ct.StartTime)
	end, ok2 := parseDate(ct.EndTime)
	if ok1 && ok2 && end.Before(start) {
		return msgEndBeforeStart
	}
	return ""
}
