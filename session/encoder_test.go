package session

import (
	"errors"
	"testing"
)

func TestDecodeRejectsMalformedRecords(t *testing.T) {
	cases := map[string][]byte{
		"empty":           nil,
		"version only":    {recordFormatVersionCurrent},
		"unknown version": append([]byte{7}, []byte(`{"token":"t","user":{"id":"u"}}`)...),
		"bad json":        append([]byte{recordFormatVersionCurrent}, []byte(`{`)...),
		"missing user":    append([]byte{recordFormatVersionCurrent}, []byte(`{"token":"t"}`)...),
		"missing token":   append([]byte{recordFormatVersionCurrent}, []byte(`{"user":{"id":"u"}}`)...),
		"user without id": append([]byte{recordFormatVersionCurrent}, []byte(`{"token":"t","user":{"name":"x"}}`)...),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := Decode(data); !errors.Is(err, ErrRecordCorrupt) {
				t.Fatalf("expected ErrRecordCorrupt, got %v", err)
			}
		})
	}
}

func TestEncodeRejectsEmptyToken(t *testing.T) {
	if _, err := Encode("", testUser()); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestEncodeWritesVersionByte(t *testing.T) {
	data, err := Encode("tok", testUser())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if data[0] != recordFormatVersionCurrent {
		t.Fatalf("version byte = %d", data[0])
	}
	token, user, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if token != "tok" || user != testUser() {
		t.Fatalf("decoded %q %+v", token, user)
	}
}
