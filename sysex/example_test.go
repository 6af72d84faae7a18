// SPDX-License-Identifier: EPL-2.0

package sysex_test

import (
	"fmt"

	"github.com/ik5/lumacodec/sysex"
)

func ExamplePack() {
	packed := sysex.Pack([]byte{0x80, 0x01, 0x00})
	fmt.Printf("% x\n", packed)
	fmt.Printf("% x\n", sysex.Unpack(packed))
	// Output:
	// 40 00 01 00
	// 80 01 00
}

func ExampleEncodeRequest() {
	req := sysex.SampleHeader{Command: sysex.CmdSample | sysex.CmdRequest, Bank: 2, Slot: 5}
	msg := sysex.EncodeRequest(req)

	h, _, err := sysex.DecodeSampleDump(msg)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d bytes on the wire\n", len(msg))
	fmt.Printf("%v bank=%d slot=%d\n", h.Command, h.Bank, h.Slot)
	// Output:
	// 39 bytes on the wire
	// sample? bank=2 slot=5
}
