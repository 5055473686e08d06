// Copyright 2023 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package observation

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/jackbister/wtrack/internal/fake"
)

const beacon = "1610000000.0\t2412\t-45\t0\t8\tAA:BB:CC:DD:EE:FF\tFF:FF:FF:FF:FF:FF\t0\tMyStation\n"

func TestNew_Beacon(t *testing.T) {
	o := New(beacon)

	if o.Timestamp() != 1610000000.0 {
		t.Errorf("expected timestamp=1610000000.0, got %v", o.Timestamp())
	}
	if o.Frequency() != "2412" {
		t.Errorf("expected frequency=2412, got %q", o.Frequency())
	}
	if o.Signal() != 45 {
		t.Errorf("expected signal=45, got %v", o.Signal())
	}
	checkUint(t, "type", o.Type(), 0, true)
	checkUint(t, "subtype", o.Subtype(), 8, true)
	if o.Src() != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("expected src=AA:BB:CC:DD:EE:FF, got %q", o.Src())
	}
	if o.Dest() != "FF:FF:FF:FF:FF:FF" {
		t.Errorf("expected dest=FF:FF:FF:FF:FF:FF, got %q", o.Dest())
	}
	if v, ok := o.Attr("0"); !ok || v != "MyStation" {
		t.Errorf("expected attr 0=MyStation, got %q (ok=%v)", v, ok)
	}
	if o.Station() != "MyStation" {
		t.Errorf("expected station=MyStation, got %q", o.Station())
	}
	if !o.AP() {
		t.Error("expected ap=true for type 0 subtype 8")
	}
	if o.FieldsLength() != 9 {
		t.Errorf("expected 9 fields, got %v", o.FieldsLength())
	}
	if !o.Valid() {
		t.Error("expected record to be valid")
	}
	if o.Record() != beacon {
		t.Error("expected Record to return the input unchanged")
	}
}

func TestNew_NotAP(t *testing.T) {
	o := New(strings.Replace(beacon, "\t0\t8\t", "\t1\t4\t", 1))
	if o.AP() {
		t.Error("expected ap=false for type 1 subtype 4")
	}
	pt := o.PacketType()
	checkUint(t, "packetType.type", pt.Type, 1, true)
	checkUint(t, "packetType.subtype", pt.Subtype, 4, true)
}

func TestNew_Empty(t *testing.T) {
	o := New("")
	if o.Valid() {
		t.Error("expected empty record to be invalid")
	}
	if o.FieldsLength() != 1 {
		t.Errorf("expected 1 field, got %v", o.FieldsLength())
	}
	if len(o.Attrs()) != 0 {
		t.Errorf("expected no attributes, got %v", o.Attrs())
	}
	if o.Timestamp() != NoTimestamp {
		t.Errorf("expected timestamp=%v, got %v", NoTimestamp, o.Timestamp())
	}
	if o.Signal() != NoSignal {
		t.Errorf("expected signal=%v, got %v", NoSignal, o.Signal())
	}
	checkUint(t, "type", o.Type(), 0, false)
	if o.Src() != "" || o.Dest() != "" || o.Station() != "" {
		t.Error("expected empty src, dest and station")
	}
	if o.AP() {
		t.Error("expected ap=false")
	}
}

func TestFields_Offsets(t *testing.T) {
	tableTests := []struct {
		input    string
		expected []Field
	}{
		{"", []Field{{0, 0}}},
		{"\n", []Field{{0, 0}}},
		{"a", []Field{{0, 1}}},
		{"a\n", []Field{{0, 1}}},
		{"a\tbc", []Field{{0, 1}, {2, 4}}},
		{"a\tbc\n", []Field{{0, 1}, {2, 4}}},
		{"\t", []Field{{0, 0}, {1, 1}}},
		{"a\t\n", []Field{{0, 1}, {2, 2}}},
		{"a\r\n", []Field{{0, 2}}},
	}
	for _, tt := range tableTests {
		t.Run(strconv.Quote(tt.input), func(t *testing.T) {
			got := New(tt.input).Fields()
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v fields, got %v", len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("field %v: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestFields_MultiByte(t *testing.T) {
	o := New("1.0\t2412\t-1\t0\t8\tsrc\tdst\t0\tcafé\tk\tv\n")
	if v, _ := o.Attr("0"); v != "café" {
		t.Errorf("expected attr 0=café, got %q", v)
	}
	if v, _ := o.Attr("k"); v != "v" {
		t.Errorf("expected attr k=v, got %q", v)
	}
}

func TestAttr(t *testing.T) {
	prefix := "1.0\t2412\t-1\t0\t8\tsrc\tdst"
	tableTests := []struct {
		name     string
		tail     string
		expected map[string]string
	}{
		{"none", "", map[string]string{}},
		{"one pair", "\tk\tv", map[string]string{"k": "v"}},
		{"odd trailing key dropped", "\tk\tv\torphan", map[string]string{"k": "v"}},
		{"duplicate keys last wins", "\tk\tv1\tj\tx\tk\tv2", map[string]string{"k": "v2", "j": "x"}},
		{"empty key and value", "\t\t", map[string]string{"": ""}},
	}
	for _, tt := range tableTests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(prefix + tt.tail + "\n")
			attrs := o.Attrs()
			if len(attrs) != len(tt.expected) {
				t.Fatalf("expected attrs=%v, got %v", tt.expected, attrs)
			}
			for k, v := range tt.expected {
				if got, ok := o.Attr(k); !ok || got != v {
					t.Errorf("expected attr %q=%q, got %q (ok=%v)", k, v, got, ok)
				}
			}
		})
	}

	if _, ok := New(prefix + "\tk\tv").Attr("missing"); ok {
		t.Error("expected missing attribute to be absent")
	}
}

func TestAttrs_IsCopy(t *testing.T) {
	o := New(beacon)
	o.Attrs()["0"] = "changed"
	if o.Station() != "MyStation" {
		t.Errorf("expected Attrs to return a copy, station changed to %q", o.Station())
	}
}

func TestValid(t *testing.T) {
	tableTests := []struct {
		numFields int
		expected  bool
	}{
		{1, false},
		{7, false},
		{8, true},
		{9, true},
	}
	for _, tt := range tableTests {
		t.Run(strconv.Itoa(tt.numFields), func(t *testing.T) {
			parts := make([]string, tt.numFields)
			for i := range parts {
				parts[i] = strconv.Itoa(i)
			}
			o := New(strings.Join(parts, "\t"))
			if o.FieldsLength() != tt.numFields {
				t.Errorf("expected %v fields, got %v", tt.numFields, o.FieldsLength())
			}
			if o.Valid() != tt.expected {
				t.Errorf("expected valid=%v, got %v", tt.expected, o.Valid())
			}
		})
	}
}

func TestTimestamp(t *testing.T) {
	tableTests := []struct {
		input    string
		expected float64
	}{
		{"1610000000.5", 1610000000.5},
		{"12", 12},
		{"+3.5", 3.5},
		{"-2", -2},
		{"1e3", 1000},
		{"abc", NoTimestamp},
		{"", NoTimestamp},
		{" 1.0", NoTimestamp},
		{"0x10", NoTimestamp},
		{"1_000", NoTimestamp},
	}
	for _, tt := range tableTests {
		t.Run(tt.input, func(t *testing.T) {
			got := New(tt.input + "\t2412\t-1").Timestamp()
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTime(t *testing.T) {
	got, ok := New("1610000000.25\t2412").Time()
	if !ok {
		t.Fatal("expected ok=true")
	}
	expected := time.Unix(1610000000, 250000000)
	if !got.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
	if _, ok := New("abc\t2412").Time(); ok {
		t.Error("expected ok=false for non-numeric timestamp")
	}
	if _, ok := New("inf\t2412").Time(); ok {
		t.Error("expected ok=false for infinite timestamp")
	}
}

func TestSignal(t *testing.T) {
	tableTests := []struct {
		input    string
		expected int
	}{
		{"-45", 45},
		{"45", 45},
		{"+45", 45},
		{"0", 0},
		{"-2147483648", 2147483648},
		{"2147483648", NoSignal},
		{"-45.5", NoSignal},
		{"abc", NoSignal},
		{"", NoSignal},
	}
	for _, tt := range tableTests {
		t.Run(tt.input, func(t *testing.T) {
			got := New("1.0\t2412\t" + tt.input + "\t0\t8").Signal()
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestType(t *testing.T) {
	tableTests := []struct {
		input         string
		expected      uint32
		expectPresent bool
	}{
		{"0", 0, true},
		{"2", 2, true},
		{"+2", 2, true},
		{"007", 7, true},
		{"4294967295", 4294967295, true},
		{"4294967296", 0, false},
		{"-1", 0, false},
		{"++1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tableTests {
		t.Run(tt.input, func(t *testing.T) {
			o := New("1.0\t2412\t-1\t" + tt.input + "\t" + tt.input)
			checkUint(t, "type", o.Type(), tt.expected, tt.expectPresent)
			checkUint(t, "subtype", o.Subtype(), tt.expected, tt.expectPresent)
		})
	}
}

func TestPacketType_Independent(t *testing.T) {
	pt := New("1.0\t2412\t-1\tabc\t8").PacketType()
	checkUint(t, "type", pt.Type, 0, false)
	checkUint(t, "subtype", pt.Subtype, 8, true)
}

func TestAP_IsTextual(t *testing.T) {
	tableTests := []struct {
		typ, subtype string
		expected     bool
	}{
		{"0", "8", true},
		{"00", "8", false},
		{"0", "+8", false},
		{"0", "08", false},
		{"1", "8", false},
	}
	for _, tt := range tableTests {
		t.Run(tt.typ+"/"+tt.subtype, func(t *testing.T) {
			o := New("1.0\t2412\t-1\t" + tt.typ + "\t" + tt.subtype + "\tsrc\tdst\n")
			if o.AP() != tt.expected {
				t.Errorf("expected ap=%v, got %v", tt.expected, o.AP())
			}
		})
	}
}

func TestStation(t *testing.T) {
	tableTests := []struct {
		raw      string
		expected string
	}{
		{"MyStation", "MyStation"},
		{"  padded  ", "padded"},
		{`caf\xc3\xa9`, "caf.."},
		{`\xzz-name`, ".-name"},
		{`name\x`, `name\x`},
		{`name\x1`, `name\x1`},
		{`\xe2\x80\x99 `, "..."},
		{`a\Xff`, `a\Xff`},
	}
	for _, tt := range tableTests {
		t.Run(tt.raw, func(t *testing.T) {
			o := New("1.0\t2412\t-1\t0\t8\tsrc\tdst\t0\t" + tt.raw + "\n")
			if o.Station() != tt.expected {
				t.Errorf("expected station=%q, got %q", tt.expected, o.Station())
			}
		})
	}
	if New("1.0\t2412\t-1\t0\t8\tsrc\tdst\t1\tother\n").Station() != "" {
		t.Error("expected empty station when attribute 0 is missing")
	}
}

func TestNew_FakeRecords(t *testing.T) {
	gofakeit.Seed(0)
	for i := 0; i < 200; i++ {
		r := fake.Observation(5, gofakeit.Number(0, 1) == 1)
		o := New(r.String())

		expectedLength := FieldAttrs + 2*r.NumPairs
		if r.Orphan {
			expectedLength++
		}
		if o.FieldsLength() != expectedLength {
			t.Fatalf("record %v: expected %v fields, got %v", i, expectedLength, o.FieldsLength())
		}
		if o.Valid() != (expectedLength >= MinValidFields) {
			t.Fatalf("record %v: expected valid=%v", i, expectedLength >= MinValidFields)
		}
		if len(o.Attrs()) != r.NumPairs {
			t.Fatalf("record %v: expected %v attrs, got %v", i, r.NumPairs, len(o.Attrs()))
		}
		if o.Signal() < 0 {
			t.Fatalf("record %v: expected non-negative signal, got %v", i, o.Signal())
		}
		if o.Src() != r.Fields[FieldSource] || o.Dest() != r.Fields[FieldDest] {
			t.Fatalf("record %v: src/dest mismatch", i)
		}
	}
}

func TestObservation_ConcurrentReads(t *testing.T) {
	o := New(beacon)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if o.Station() != "MyStation" || !o.AP() || o.Signal() != 45 {
					t.Error("unexpected value during concurrent read")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func checkUint(t *testing.T, name string, got *uint32, expected uint32, expectPresent bool) {
	t.Helper()
	if !expectPresent {
		if got != nil {
			t.Errorf("expected %v to be absent, got %v", name, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("expected %v=%v, got absent", name, expected)
		return
	}
	if *got != expected {
		t.Errorf("expected %v=%v, got %v", name, expected, *got)
	}
}
