package sequence

import (
	"fmt"

	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/util"
)

var demos = map[string]string{
	"triads":     "Piano,C,Major|1+3+5;2+4+6;3+5+7;4+6+1;5+7+2;6+1+3;7+2+4;1+3+5|1000",
	"blues":      "Piano,A,Blues|1;2;3;4;5;6;1;6;5;4;3;2;1|400,300",
	"fifths":     "Piano,C,Major,true|C;G;D;A;E;B;F#;C#;G#;D#;A#;F;C|500",
	"chromatic":  "Piano,C,Major,false,true|s0;s1;s2;s3;s4;s5;s6;s7;s8;s9;s10;s11;s12|250",
	"pentatonic": "Piano,E,Minor Pentatonic|1;2;3;4;5;6;7;8;9;10|300",
	"sevenths":   "Piano,C,Major|C+E+G+A#;F+A+C+D#;G+B+D+F;C+E+G+B|2000,1800",
}

func DemoNames() []string {
	return util.GetKeysSorted(demos)
}

func Demo(name string) (*model.Sequence, error) {
	compact, ok := demos[name]
	if !ok {
		return nil, malformed("no demo named %q", name)
	}
	seq, err := Parse(compact)
	if err != nil {
		panic(fmt.Sprintf("built-in demo %q does not parse: %v", name, err))
	}
	return seq, nil
}
