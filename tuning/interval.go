package tuning

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// represents an interval in terms of source components
type interval struct {
	Cents float64 // raw interval, used when Ints is unset
	Ints  [2]int  // rational or edostep, see IsEdo
	IsEdo bool
}

// return a new cents interval
func newCentsInterval(c float64) *interval {
	return &interval{Cents: c}
}

// return a new rational interval
func newRatInterval(num, den int) *interval {
	return &interval{Ints: [2]int{num, den}}
}

// return a new edostep interval
func newEdoInterval(steps, edo int) *interval {
	return &interval{Ints: [2]int{steps, edo}, IsEdo: true}
}

// return the frequency ratio of the interval
func (iv *interval) ratio() float64 {
	if iv.Ints[1] == 0 {
		return math.Pow(2, iv.Cents/1200)
	} else if iv.IsEdo {
		return math.Pow(2, float64(iv.Ints[0])/float64(iv.Ints[1]))
	}
	return float64(iv.Ints[0]) / float64(iv.Ints[1])
}

// reduce a fraction
func reduce(num, den int) (int, int) {
	a, b := num, den
	for b != 0 {
		a, b = b, a%b
	}
	if a <= 1 {
		return num, den
	}
	return num / a, den / a
}

// report whether r can be stored as a frequency ratio
func validRatio(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// parse an integer term of a ratio or edo step, bounded to 32 bits
func parseTerm(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int(n), err == nil
}

var (
	ratioRegexp  = regexp.MustCompile(`^([0-9.]+)/([0-9.]+)$`)
	edoRegexp    = regexp.MustCompile(`^(-?[0-9]+)\\([0-9]+)$`)
	centsRegexp  = regexp.MustCompile(`^(-?[0-9.]+)c$`)
	errBadSyntax = fault.New("invalid interval syntax")
)

// convert a string to an interval. the result always has a finite, positive
// ratio.
func parseInterval(s string) (*interval, error) {
	s = strings.TrimSpace(s)
	iv, ok := scanInterval(s)
	if !ok || !validRatio(iv.ratio()) {
		return nil, badInterval(s)
	}
	return iv, nil
}

func scanInterval(s string) (*interval, bool) {
	if m := ratioRegexp.FindStringSubmatch(s); m != nil {
		if !strings.Contains(s, ".") {
			num, ok1 := parseTerm(m[1])
			den, ok2 := parseTerm(m[2])
			if !ok1 || !ok2 || num <= 0 || den <= 0 {
				return nil, false
			}
			return newRatInterval(reduce(num, den)), true
		}
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || num <= 0 || den <= 0 {
			return nil, false
		}
		return newCentsInterval(1200 * math.Log2(num/den)), true
	} else if m := edoRegexp.FindStringSubmatch(s); m != nil {
		step, ok1 := parseTerm(m[1])
		edo, ok2 := parseTerm(m[2])
		if !ok1 || !ok2 || edo == 0 {
			return nil, false
		}
		return newEdoInterval(step, edo), true
	} else if m := centsRegexp.FindStringSubmatch(s); m != nil {
		c, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, false
		}
		return newCentsInterval(c), true
	} else if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return newCentsInterval(1200 * math.Log2(f)), true
	}
	return nil, false
}

func badInterval(s string) error {
	return fault.Wrap(errBadSyntax,
		fmsg.WithDesc(fmt.Sprintf("parse %q", s), fmt.Sprintf("%q is not a ratio, edo step or cents value", s)),
		ftag.With(ftag.InvalidArgument))
}

// ParseMasterSet parses interval strings (3/2, 4\7, 701.955c or a plain
// ratio such as 1.5) into a master set. 1/1 is prepended when the first
// interval is not already unison.
func ParseMasterSet(fields []string) ([]float64, error) {
	set := []float64{}
	for _, f := range fields {
		iv, err := parseInterval(f)
		if err != nil {
			return nil, err
		}
		set = append(set, iv.ratio())
	}
	if len(set) == 0 || math.Abs(set[0]-1) > ratioEpsilon {
		set = append([]float64{1}, set...)
	}
	return set, nil
}

// ReadScala reads a scala .scl file. The returned master set starts with 1/1
// followed by the listed pitches, the last of which is normally the period.
func ReadScala(r io.Reader) (string, []float64, error) {
	var (
		name  string
		scale []float64
		count = -1
	)
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "!") || (line == "" && i > 0) {
			continue
		}
		switch {
		case i == 0:
			name = line
		case i == 1:
			n, err := strconv.ParseUint(strings.Fields(line + " x")[0], 10, 16)
			if err != nil {
				return "", nil, badScala("invalid note count")
			}
			count = int(n)
			scale = make([]float64, 1, count+1)
			scale[0] = 1
		case len(scale) <= count:
			iv, err := parseScalaPitch(line)
			if err != nil {
				return "", nil, badScala(fmt.Sprintf("invalid pitch %q", line))
			}
			scale = append(scale, iv.ratio())
		}
		i++
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fault.Wrap(err, fmsg.With("read scala file"), ftag.With(ftag.Internal))
	}
	if count < 0 || len(scale) != count+1 {
		return "", nil, badScala("note count does not match pitch lines")
	}
	return name, scale, nil
}

func badScala(msg string) error {
	return fault.New(msg, fmsg.WithDesc(msg, "Invalid scale file."), ftag.With(ftag.InvalidArgument))
}

// convert a scala pitch string into an interval. scala treats any value with
// a period as cents and anything else as a ratio; text after the value is a
// comment.
func parseScalaPitch(s string) (*interval, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, badInterval(s)
	}
	s = fields[0]
	if strings.Contains(s, ".") && !strings.Contains(s, "/") {
		c, err := strconv.ParseFloat(s, 64)
		if err != nil || !validRatio(newCentsInterval(c).ratio()) {
			return nil, badInterval(s)
		}
		return newCentsInterval(c), nil
	}
	if !strings.Contains(s, "/") {
		s += "/1"
	}
	return parseInterval(s)
}
