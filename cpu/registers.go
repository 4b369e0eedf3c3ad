package cpu

// RegisterNames holds the conventional name of each general purpose register.
var RegisterNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// Register numbers with a fixed role.
const (
	RegZero = 0
	RegSP   = 29
	RegRA   = 31
)

var registerByName = map[string]uint8{"s8": 30}

func init() {
	for i, n := range RegisterNames {
		registerByName[n] = uint8(i)
	}
}

// RegisterNumber resolves a conventional register name (without the '$').
func RegisterNumber(name string) (uint8, bool) {
	r, ok := registerByName[name]
	return r, ok
}
