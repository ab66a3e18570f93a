package deflate

import (
	"testing"
)

func TestFlushType(t *testing.T) {
	type testRow struct {
		value  FlushType
		valid  bool
		expect string
	}

	testData := [...]testRow{
		{BlockFlush, true, "BlockFlush"},
		{PartialFlush, true, "PartialFlush"},
		{SyncFlush, true, "SyncFlush"},
		{FullFlush, true, "FullFlush"},
		{FinishFlush, true, "FinishFlush"},
		{FlushType(9), false, "FlushType(9)"},
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

func TestStrategy(t *testing.T) {
	type testRow struct {
		value  Strategy
		valid  bool
		expect string
	}

	testData := [...]testRow{
		{DefaultStrategy, true, "DefaultStrategy"},
		{FixedStrategy, true, "FixedStrategy"},
		{Strategy(7), false, "Strategy(7)"},
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

func TestCompressLevel(t *testing.T) {
	type testRow struct {
		value  CompressLevel
		valid  bool
		expect string
	}

	testData := [...]testRow{
		{DefaultCompression, true, "DefaultCompression"},
		{NoCompression, true, "NoCompression"},
		{BestSpeed, true, "CompressLevel(1)"},
		{CompressLevel(6), true, "CompressLevel(6)"},
		{BestCompression, true, "CompressLevel(9)"},
		{CompressLevel(10), false, "CompressLevel(10)"},
		{CompressLevel(-2), false, "CompressLevel(-2)"},
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

func TestMemoryLevel(t *testing.T) {
	type testRow struct {
		value  MemoryLevel
		valid  bool
		expect string
	}

	testData := [...]testRow{
		{DefaultMemoryLevel, true, "DefaultMemoryLevel"},
		{MemoryLevel(1), true, "MemoryLevel(1)"},
		{MemoryLevel(9), true, "MemoryLevel(9)"},
		{MemoryLevel(10), false, "MemoryLevel(10)"},
		{MemoryLevel(-1), false, "MemoryLevel(-1)"},
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

func TestDataType(t *testing.T) {
	type testRow struct {
		value  DataType
		valid  bool
		expect string
	}

	testData := [...]testRow{
		{UnknownData, true, "UnknownData"},
		{BinaryData, true, "BinaryData"},
		{TextData, true, "TextData"},
		{DataType(3), false, "DataType(3)"},
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

func TestBlockType(t *testing.T) {
	type testRow struct {
		value  BlockType
		valid  bool
		expect string
	}

	testData := [...]testRow{
		{StoredBlock, true, "StoredBlock"},
		{StaticBlock, true, "StaticBlock"},
		{DynamicBlock, true, "DynamicBlock"},
		{BlockType(3), false, "BlockType(3)"},
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
