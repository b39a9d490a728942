//go:build windows

package linkstore

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/logging"
	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/types"
)

// ComStore implements types.LinkStore over real .lnk files through the
// WScript.Shell and Shell.Application COM objects. The caller owns COM
// initialization for the thread.
type ComStore struct {
	fs types.FS
}

var _ types.LinkStore = (*ComStore)(nil)

// NewCom creates a Windows link store. The filesystem is still injected
// for directory handling so the store stays testable.
func NewCom(fsys types.FS) *ComStore {
	return &ComStore{fs: fsys}
}

func (s *ComStore) CreateOrUpdate(path string, props types.ShortcutProperties, policy types.OverwritePolicy) error {
	existing, err := s.Properties(path)
	exists := err == nil

	switch policy {
	case types.OnlyIfAbsent:
		if exists {
			return nil
		}
	case types.UpdateExisting:
		if !exists {
			return errors.Newf(errors.ErrLinkAbsent, "no shortcut to update at %s", path)
		}
		existing.Merge(props)
		props = existing
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "creating parent of %s", path)
	}
	return s.write(path, props)
}

func (s *ComStore) write(path string, props types.ShortcutProperties) error {
	wsh, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return errors.Wrap(err, errors.ErrLinkCreate, "creating WScript.Shell")
	}
	defer wsh.Release()
	shell, err := wsh.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return errors.Wrap(err, errors.ErrLinkCreate, "querying WScript.Shell")
	}
	defer shell.Release()

	linkVar, err := oleutil.CallMethod(shell, "CreateShortcut", path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "opening shortcut %s", path)
	}
	link := linkVar.ToIDispatch()
	defer link.Release()

	set := func(prop, value string) error {
		if value == "" {
			return nil
		}
		_, err := oleutil.PutProperty(link, prop, value)
		return err
	}
	if err := set("TargetPath", props.Target); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "setting target of %s", path)
	}
	if props.Icon != "" {
		icon := fmtIcon(props.Icon, props.IconIndex)
		if _, err := oleutil.PutProperty(link, "IconLocation", icon); err != nil {
			return errors.Wrapf(err, errors.ErrLinkCreate, "setting icon of %s", path)
		}
	}
	if err := set("Description", props.Description); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "setting description of %s", path)
	}
	if err := set("WorkingDirectory", props.WorkingDir); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "setting working dir of %s", path)
	}
	if err := set("Arguments", props.Arguments); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "setting arguments of %s", path)
	}
	if _, err := oleutil.CallMethod(link, "Save"); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "saving shortcut %s", path)
	}
	return nil
}

func (s *ComStore) Resolve(path string) (types.Resolved, error) {
	props, err := s.Properties(path)
	if err != nil {
		return types.Resolved{}, err
	}
	return types.Resolved{Target: props.Target, Arguments: props.Arguments}, nil
}

func (s *ComStore) Properties(path string) (types.ShortcutProperties, error) {
	if _, err := s.fs.Stat(path); err != nil {
		return types.ShortcutProperties{}, errors.Wrapf(err, errors.ErrLinkAbsent, "no shortcut at %s", path)
	}

	wsh, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return types.ShortcutProperties{}, errors.Wrap(err, errors.ErrLinkResolve, "creating WScript.Shell")
	}
	defer wsh.Release()
	shell, err := wsh.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return types.ShortcutProperties{}, errors.Wrap(err, errors.ErrLinkResolve, "querying WScript.Shell")
	}
	defer shell.Release()

	linkVar, err := oleutil.CallMethod(shell, "CreateShortcut", path)
	if err != nil {
		return types.ShortcutProperties{}, errors.Wrapf(err, errors.ErrLinkResolve, "opening shortcut %s", path)
	}
	link := linkVar.ToIDispatch()
	defer link.Release()

	get := func(prop string) string {
		v, err := oleutil.GetProperty(link, prop)
		if err != nil {
			return ""
		}
		return v.ToString()
	}

	props := types.ShortcutProperties{
		Target:      get("TargetPath"),
		Description: get("Description"),
		WorkingDir:  get("WorkingDirectory"),
		Arguments:   get("Arguments"),
	}
	props.Icon, props.IconIndex = parseIcon(get("IconLocation"))
	return props, nil
}

func (s *ComStore) List(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "listing %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), product.LinkExt) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

func (s *ComStore) Delete(path string) error {
	if err := s.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrLinkDelete, "deleting shortcut %s", path)
	}
	return nil
}

// UnpinFromTaskbar invokes the shell's unpin verb on the shortcut. A
// shortcut that was never pinned simply has no such verb, which is fine.
func (s *ComStore) UnpinFromTaskbar(path string) error {
	log := logging.GetLogger("linkstore")

	app, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return errors.Wrap(err, errors.ErrLinkDelete, "creating Shell.Application")
	}
	defer app.Release()
	shell, err := app.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return errors.Wrap(err, errors.ErrLinkDelete, "querying Shell.Application")
	}
	defer shell.Release()

	folderVar, err := oleutil.CallMethod(shell, "NameSpace", filepath.Dir(path))
	if err != nil {
		return errors.Wrapf(err, errors.ErrLinkDelete, "opening folder of %s", path)
	}
	folder := folderVar.ToIDispatch()
	defer folder.Release()

	itemVar, err := oleutil.CallMethod(folder, "ParseName", filepath.Base(path))
	if err != nil {
		log.Trace().Str("path", path).Msg("Shortcut not found for unpin")
		return nil
	}
	item := itemVar.ToIDispatch()
	defer item.Release()

	if _, err := oleutil.CallMethod(item, "InvokeVerb", "taskbarunpin"); err != nil {
		log.Trace().Err(err).Str("path", path).Msg("Unpin verb unavailable")
	}
	return nil
}

func fmtIcon(path string, index int) string {
	return path + "," + strconv.Itoa(index)
}

func parseIcon(loc string) (string, int) {
	i := strings.LastIndex(loc, ",")
	if i < 0 {
		return loc, 0
	}
	idx, err := strconv.Atoi(strings.TrimSpace(loc[i+1:]))
	if err != nil {
		return loc, 0
	}
	return loc[:i], idx
}
