package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Folder is one entry of a folder listing.
type Folder struct {
	ID          string
	Name        string
	HasChildren bool
}

// Asset is one entry of an asset listing or search result.
type Asset struct {
	ID       string
	Name     string
	Size     int64
	Status   string
	FolderID string
	Path     string
}

// Transfer is the outcome of an upload or download.
type Transfer struct {
	ID              string
	ResultingStatus string
}

// Output carries the parsed payload of a successful call. Only the field
// matching Kind is populated.
type Output struct {
	Kind     Kind
	Folders  []Folder
	Assets   []Asset
	Transfer Transfer
}

// ReportedFailure is returned by Decode when the tool exited cleanly but
// reported success=false in its envelope.
type ReportedFailure struct {
	Message string
}

func (r *ReportedFailure) Error() string {
	return r.Message
}

type envelope struct {
	Success *bool           `json:"success"`
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error"`
}

type wireFolder struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	HasChildren *bool   `json:"has_children"`
}

type wireAsset struct {
	ID       *string `json:"id"`
	Name     *string `json:"name"`
	Size     *int64  `json:"size"`
	Status   *string `json:"status"`
	FolderID string  `json:"folder_id"`
	Path     string  `json:"path"`
}

type wireTransfer struct {
	ID              *string `json:"id"`
	ResultingStatus *string `json:"resulting_status"`
}

// Decode parses the tool's structured output against the schema for kind.
// Any deviation from the schema is an error; extra keys are ignored.
func Decode(kind Kind, raw []byte) (Output, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return Output{}, err
	}
	if !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = "tool reported failure"
		}
		return Output{}, &ReportedFailure{Message: msg}
	}
	out := Output{Kind: kind}
	switch kind {
	case KindListFolder:
		out.Folders, err = decodeFolders(env.Payload)
	case KindListAssets, KindSearch:
		out.Assets, err = decodeAssets(env.Payload)
	case KindUpload, KindDownload:
		out.Transfer, err = decodeTransfer(env.Payload)
	default:
		err = fmt.Errorf("no schema for %s", kind)
	}
	if err != nil {
		return Output{}, err
	}
	return out, nil
}

func decodeEnvelope(raw []byte) (envelope, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return env, errors.New("empty output")
		}
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return env, errors.New("trailing data after envelope")
	}
	if env.Success == nil {
		return env, errors.New(`missing "success" key`)
	}
	return env, nil
}

func requireShape(payload json.RawMessage, open byte) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return errors.New(`missing "payload" key`)
	}
	if trimmed[0] != open {
		if open == '[' {
			return errors.New("payload is not a list")
		}
		return errors.New("payload is not an object")
	}
	return nil
}

func decodeFolders(payload json.RawMessage) ([]Folder, error) {
	if err := requireShape(payload, '['); err != nil {
		return nil, err
	}
	var wire []wireFolder
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("decode folders: %w", err)
	}
	folders := make([]Folder, 0, len(wire))
	for i, w := range wire {
		if w.ID == nil || *w.ID == "" {
			return nil, fmt.Errorf("folder %d: missing id", i)
		}
		if w.Name == nil {
			return nil, fmt.Errorf("folder %d: missing name", i)
		}
		if w.HasChildren == nil {
			return nil, fmt.Errorf("folder %d: missing has_children", i)
		}
		folders = append(folders, Folder{ID: *w.ID, Name: *w.Name, HasChildren: *w.HasChildren})
	}
	return folders, nil
}

func decodeAssets(payload json.RawMessage) ([]Asset, error) {
	if err := requireShape(payload, '['); err != nil {
		return nil, err
	}
	var wire []wireAsset
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	assets := make([]Asset, 0, len(wire))
	for i, w := range wire {
		switch {
		case w.ID == nil || *w.ID == "":
			return nil, fmt.Errorf("asset %d: missing id", i)
		case w.Name == nil:
			return nil, fmt.Errorf("asset %d: missing name", i)
		case w.Size == nil:
			return nil, fmt.Errorf("asset %d: missing size", i)
		case *w.Size < 0:
			return nil, fmt.Errorf("asset %d: negative size", i)
		case w.Status == nil:
			return nil, fmt.Errorf("asset %d: missing status", i)
		}
		assets = append(assets, Asset{
			ID:       *w.ID,
			Name:     *w.Name,
			Size:     *w.Size,
			Status:   *w.Status,
			FolderID: w.FolderID,
			Path:     w.Path,
		})
	}
	return assets, nil
}

func decodeTransfer(payload json.RawMessage) (Transfer, error) {
	if err := requireShape(payload, '{'); err != nil {
		return Transfer{}, err
	}
	var wire wireTransfer
	if err := json.Unmarshal(payload, &wire); err != nil {
		return Transfer{}, fmt.Errorf("decode transfer: %w", err)
	}
	if wire.ID == nil || *wire.ID == "" {
		return Transfer{}, errors.New("transfer: missing id")
	}
	if wire.ResultingStatus == nil {
		return Transfer{}, errors.New("transfer: missing resulting_status")
	}
	return Transfer{ID: *wire.ID, ResultingStatus: *wire.ResultingStatus}, nil
}
