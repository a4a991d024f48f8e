//go:build js && wasm

package webgl

import (
	"runtime"
	"syscall/js"
	"unsafe"
)

var (
	uint8ArrayCtor   = js.Global().Get("Uint8Array")
	uint16ArrayCtor  = js.Global().Get("Uint16Array")
	float32ArrayCtor = js.Global().Get("Float32Array")
)

// sliceAsByteSlice reinterprets the provided slice of data as a []byte.
// See https://github.com/golang/go/issues/32402.
func sliceAsByteSlice[T uint16 | float32](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	bytePtr := (*byte)(unsafe.Pointer(&data[0]))
	byteLen := len(data) * int(unsafe.Sizeof(zero))
	bytes := unsafe.Slice(bytePtr, byteLen)
	runtime.KeepAlive(data)
	return bytes
}

// float32Array copies data into a JS Float32Array via a single bulk byte
// copy rather than one SetIndex call per element.
func float32Array(data []float32) js.Value {
	u8 := uint8ArrayCtor.New(len(data) * 4)
	js.CopyBytesToJS(u8, sliceAsByteSlice(data))
	return float32ArrayCtor.New(u8.Get("buffer"))
}

// uint16Array copies data into a JS Uint16Array.
func uint16Array(data []uint16) js.Value {
	u8 := uint8ArrayCtor.New(len(data) * 2)
	js.CopyBytesToJS(u8, sliceAsByteSlice(data))
	return uint16ArrayCtor.New(u8.Get("buffer"))
}
