package columnar

// varlen stores variable-length byte values back to back. Value i occupies
// data[offsets[i]:offsets[i+1]], so offsets always holds Len()+1 entries.
type varlen struct {
	offsets []int
	data    []byte
}

func newVarlen(capacity int) varlen {
	offsets := make([]int, 1, capacity+1)
	return varlen{offsets: offsets}
}

func (v *varlen) Len() int {
	return spans(v.offsets)
}

func (v *varlen) IsEmpty() bool {
	return v.Len() == 0
}

// at returns a view of value i with its capacity clipped, so appending to it
// reallocates instead of overwriting the next value.
func (v *varlen) at(i int) ([]byte, bool) {
	if i < 0 || i >= v.Len() {
		return nil, false
	}
	start, end := v.offsets[i], v.offsets[i+1]
	return v.data[start:end:end], true
}

func (v *varlen) push(value []byte) {
	v.data = append(v.data, value...)
	v.offsets = append(v.offsets, len(v.data))
}

func (v *varlen) pushString(value string) {
	v.data = append(v.data, value...)
	v.offsets = append(v.offsets, len(v.data))
}

func (v *varlen) clone() varlen {
	out := varlen{
		offsets: make([]int, len(v.offsets)),
		data:    make([]byte, len(v.data)),
	}
	copy(out.offsets, v.offsets)
	copy(out.data, v.data)
	return out
}

// take hands the storage over to a new array and leaves v empty.
func (v *varlen) take() varlen {
	out := *v
	*v = varlen{offsets: []int{0}}
	return out
}

// spans returns the number of values delimited by offsets. A zero value
// has no offsets at all and holds nothing.
func spans(offsets []int) int {
	if len(offsets) == 0 {
		return 0
	}
	return len(offsets) - 1
}

// dataSize returns the total number of value bytes.
func (v *varlen) dataSize() int {
	return len(v.data)
}
