package dos

// dosTable returns the handlers of the DOS function dispatcher.
func dosTable() *Table {
	fileAttr := &Table{
		Name:  "file attributes",
		Field: AL,
		Handlers: map[uint8]Handler{
			0x00: {Desc: "GET_FILE_ATTR", Handler: GetFileAttr},
			0x01: {Desc: "SET_FILE_ATTR", Handler: SetFileAttr},
		},
	}

	fileTime := &Table{
		Name:  "file time",
		Field: AL,
		Handlers: map[uint8]Handler{
			0x00: {Desc: "GET_FILE_TIME", Handler: GetFileTime},
			0x01: {Desc: "SET_FILE_TIME", Handler: SetFileTime},
		},
	}

	extErrVersion := &Table{
		Name:  "extended error level",
		Field: BL,
		Handlers: map[uint8]Handler{
			0x00: {Desc: "GET_EXT_ERROR", Handler: GetExtendedError},
		},
	}
	extErr := &Table{
		Name:  "extended error",
		Field: BH,
		Handlers: map[uint8]Handler{
			0x00: {Desc: "VERSION_0", Sub: extErrVersion},
		},
	}

	return &Table{
		Name:  "INT 21h",
		Field: AH,
		Handlers: map[uint8]Handler{
			0x01: {Desc: "READ_CHAR_ECHO", Handler: ReadCharEcho},
			0x02: {Desc: "WRITE_CHAR", Handler: WriteChar},
			0x08: {Desc: "READ_CHAR", Handler: ReadChar},
			0x09: {Desc: "WRITE_STRING", Handler: WriteString},
			0x1A: {Desc: "SET_DTA", Handler: SetDTA},
			0x25: {Desc: "SET_VECTOR", Handler: SetVector},
			0x2A: {Desc: "GET_DATE", Handler: GetDate},
			0x2B: {Desc: "SET_DATE", Handler: SetDate},
			0x2C: {Desc: "GET_TIME", Handler: GetTime},
			0x2D: {Desc: "SET_TIME", Handler: SetTime},
			0x2F: {Desc: "GET_DTA", Handler: GetDTA},
			0x35: {Desc: "GET_VECTOR", Handler: GetVector},
			0x3C: {Desc: "CREATE", Handler: Create},
			0x3D: {Desc: "OPEN", Handler: Open},
			0x3E: {Desc: "CLOSE", Handler: Close},
			0x43: {Desc: "FILE_ATTR", Sub: fileAttr},
			0x48: {Desc: "ALLOC_MEM", Handler: AllocMem},
			0x49: {Desc: "FREE_MEM", Handler: FreeMem},
			0x4A: {Desc: "SET_BLOCK", Handler: SetBlock},
			0x4E: {Desc: "FIND_FIRST", Handler: FindFirst},
			0x4F: {Desc: "FIND_NEXT", Handler: FindNext},
			0x57: {Desc: "FILE_TIME", Sub: fileTime},
			0x59: {Desc: "EXT_ERROR", Sub: extErr},
			0x5B: {Desc: "CREATE_NEW", Handler: CreateNew},
		},
	}
}

// multiplexTable returns the handlers of the multiplex interrupt.
func multiplexTable() *Table {
	internal := &Table{
		Name:  "internal services",
		Field: AL,
		Handlers: map[uint8]Handler{
			0x22: {Desc: "SET_EXT_ERROR", Handler: SetExtendedError},
		},
	}

	return &Table{
		Name:  "INT 2Fh",
		Field: AH,
		Handlers: map[uint8]Handler{
			0x12: {Desc: "DOS_INTERNAL", Sub: internal},
		},
	}
}
