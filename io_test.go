package voevent

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var v2Packets = []string{
	"SWIFT_bat_position_v2.0_example.xml",
	"MOA_Lensing_Event_2015-BLG-0001.xml",
	"Gaia16aac.xml",
	"ASASSN_15lh.xml",
	"springboro_observatory.xml",
	"tt_timescale.xml",
	"no_namespace_packet.xml",
	"latin1_packet.xml",
}

func TestSerialize_RestoresPrefix(t *testing.T) {
	d := loadPacket(t, "SWIFT_bat_position_v2.0_example.xml")

	data, err := Serialize(d, DefaultWriteOptions())
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "<voe:VOEvent ") || !strings.Contains(s, "</voe:VOEvent>") {
		t.Error("expected root written as voe:VOEvent")
	}
	if !strings.Contains(s, `xmlns:voe="http://www.ivoa.net/xml/VOEvent/v2.0"`) {
		t.Error("expected namespace declaration to be kept")
	}

	if d.Root().Tag() != "VOEvent" || d.Section("Who") == nil {
		t.Error("serializing must leave the document navigable by plain names")
	}
}

func TestSerialize_NoNamespace(t *testing.T) {
	d := loadPacket(t, "no_namespace_packet.xml")
	data, err := Serialize(d, WriteOptions{})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<VOEvent ")) {
		t.Errorf("unexpected output start: %.40s", data)
	}
}

func TestSerialize_Stable(t *testing.T) {
	options := []WriteOptions{
		DefaultWriteOptions(),
		{},
		{XMLDeclaration: true},
		{PrettyPrint: true},
	}

	for _, name := range v2Packets {
		for _, opts := range options {
			d := loadPacket(t, name)
			first, err := Serialize(d, opts)
			if err != nil {
				t.Fatalf("%s: Serialize: %v", name, err)
			}
			again, err := Parse(first)
			if err != nil {
				t.Fatalf("%s: re-parse: %v", name, err)
			}
			second, err := Serialize(again, opts)
			if err != nil {
				t.Fatalf("%s: second Serialize: %v", name, err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("%s %+v: output changed after a round trip\nfirst:\n%s\nsecond:\n%s", name, opts, first, second)
			}
		}
	}
}

func TestSerialize_DoesNotModifyDocument(t *testing.T) {
	d := New("example.org/test", 7, RoleTest)
	first, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated serialization differs")
	}
	if d.Prefix() != "voe" || d.Root().Tag() != "VOEvent" {
		t.Error("document normalization changed by serialization")
	}
}

func TestSerialize_Declaration(t *testing.T) {
	d := New("example.org/test", 1, RoleTest)

	with, err := Serialize(d, WriteOptions{XMLDeclaration: true})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(with, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)) {
		t.Errorf("expected declaration, got %.60s", with)
	}

	without, err := Serialize(d, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(without, []byte("<voe:VOEvent")) {
		t.Errorf("expected bare root, got %.60s", without)
	}
}

func TestSerialize_PrettyPrint(t *testing.T) {
	d := New("example.org/test", 1, RoleTest)

	pretty, err := Serialize(d, WriteOptions{PrettyPrint: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pretty), "\n  <Who>") {
		t.Errorf("expected two-space indentation:\n%s", pretty)
	}

	compact, err := Serialize(d, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Errorf("expected single-line output:\n%s", compact)
	}
}

func TestDocumentBytes_Defaults(t *testing.T) {
	d := New("example.org/test", 1, RoleTest)

	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	want, err := Serialize(d, WriteOptions{XMLDeclaration: true, Encoding: "UTF-8"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Bytes should be compact with a declaration:\n%s", data)
	}
	if strings.Contains(string(data), "\n  <Who>") {
		t.Errorf("Bytes should not re-indent:\n%s", data)
	}
}

func TestSerialize_Encoding(t *testing.T) {
	d := New("example.org/test", 1, RoleTest)
	d.Section("What").SetChild("Description", "Café")

	data, err := Serialize(d, WriteOptions{XMLDeclaration: true, Encoding: "ISO-8859-1"})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="ISO-8859-1"?>`)) {
		t.Errorf("unexpected declaration: %.60s", data)
	}
	if !bytes.Contains(data, []byte{'C', 'a', 'f', 0xE9}) {
		t.Error("expected Latin-1 encoded text")
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := back.Root().Find("What", "Description").Text(); got != "Café" {
		t.Errorf("Description = %q after round trip", got)
	}
}

func TestSerialize_EncodingErrors(t *testing.T) {
	d := New("example.org/test", 1, RoleTest)

	if _, err := Serialize(d, WriteOptions{Encoding: "no-such-charset"}); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("expected ErrUnsupportedEncoding, got %v", err)
	}

	d.Section("What").SetChild("Description", "日本")
	if _, err := Serialize(d, WriteOptions{Encoding: "ISO-8859-1"}); err == nil {
		t.Error("expected error for characters outside the target encoding")
	}
}

func TestDump(t *testing.T) {
	d := loadPacket(t, "MOA_Lensing_Event_2015-BLG-0001.xml")

	var buf bytes.Buffer
	if err := Dump(d, &buf, DefaultWriteOptions()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	want, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Error("Dump output differs from Bytes")
	}
}

func TestSerialize_PreservesWhitespace(t *testing.T) {
	d := loadPacket(t, "SWIFT_bat_position_v2.0_example.xml")
	data, err := Serialize(d, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n    <AuthorIVORN>") {
		t.Error("expected source indentation to survive a compact write")
	}
}
