package deflate

import (
	"testing"
)

func TestEventType(t *testing.T) {
	type testRow struct {
		value  EventType
		valid  bool
		expect string
	}

	testData := [...]testRow{
		{StreamBeginEvent, true, "StreamBeginEvent"},
		{BlockBeginEvent, true, "BlockBeginEvent"},
		{BlockTreesEvent, true, "BlockTreesEvent"},
		{BlockEndEvent, true, "BlockEndEvent"},
		{StreamEndEvent, true, "StreamEndEvent"},
		{EventType(5), false, "EventType(5)"},
	}
	for _, row := range testData {
		if actual := row.value.IsValid(); actual != row.valid {
			t.Errorf("%s: IsValid is %v, expected %v", row.expect, actual, row.valid)
		}
		if actual := row.value.String(); actual != row.expect {
			t.Errorf("wrong name:\n\texpect: %s\n\tactual: %s", row.expect, actual)
		}
	}
}
