package snapraw

// UnknownPrefix is used as prefix for tag ids not present in any dictionary.
const UnknownPrefix = "UnknownTag_"

// Structural tags that point at child directories rather than values.
const (
	tagExifIFDPointer = 0x8769
	tagSubIFDs        = 0x014a
)

// exifFields maps standard TIFF/EXIF tag ids to field names.
// This is a closed set; ids outside it decode under UnknownPrefix.
var exifFields = map[uint16]string{
	0x00fe: "NewSubfileType",
	0x00ff: "SubfileType",
	0x0100: "ImageWidth",
	0x0101: "ImageLength",
	0x0102: "BitsPerSample",
	0x0103: "Compression",
	0x0106: "PhotometricInterpretation",
	0x010e: "ImageDescription",
	0x010f: "Make",
	0x0110: "Model",
	0x0111: "StripOffsets",
	0x0112: "Orientation",
	0x0115: "SamplesPerPixel",
	0x0116: "RowsPerStrip",
	0x0117: "StripByteCounts",
	0x011a: "XResolution",
	0x011b: "YResolution",
	0x011c: "PlanarConfiguration",
	0x0128: "ResolutionUnit",
	0x0131: "Software",
	0x0132: "DateTime",
	0x013b: "Artist",
	0x013c: "HostComputer",
	0x0140: "ColorMap",
	0x014a: "SubIFDs",
	0x0152: "ExtraSamples",
	0x8298: "Copyright",
	0x829a: "ExposureTime",
	0x829d: "FNumber",
	0x8769: "ExifIFDPointer",
	0x8822: "ExposureProgram",
	0x8825: "GPSIFDPointer",
	0x8827: "ISOSpeedRatings",
	0x9003: "DateTimeOriginal",
	0x9004: "DateTimeDigitized",
	0x9101: "ComponentsConfiguration",
	0x9102: "CompressedBitsPerPixel",
	0x9201: "ShutterSpeedValue",
	0x9202: "ApertureValue",
	0x9204: "ExposureBiasValue",
	0x9205: "MaxApertureValue",
	0x9207: "MeteringMode",
	0x9208: "LightSource",
	0x9209: "Flash",
	0x920a: "FocalLength",
	0x927c: "MakerNote",
	0x9286: "UserComment",
	0x9290: "SubSecTime",
	0x9291: "SubSecTimeOriginal",
	0x9292: "SubSecTimeDigitized",
	0xa000: "FlashpixVersion",
	0xa001: "ColorSpace",
	0xa002: "PixelXDimension",
	0xa003: "PixelYDimension",
	0xa005: "InteroperabilityIFDPointer",
	0xa20e: "FocalPlaneXResolution",
	0xa20f: "FocalPlaneYResolution",
	0xa210: "FocalPlaneResolutionUnit",
	0xa217: "SensingMethod",
	0xa300: "FileSource",
	0xa301: "SceneType",
	0xa401: "CustomRendered",
	0xa402: "ExposureMode",
	0xa403: "WhiteBalance",
	0xa404: "DigitalZoomRatio",
	0xa405: "FocalLengthIn35mmFilm",
	0xa406: "SceneCaptureType",
	0xa407: "GainControl",
	0xa408: "Contrast",
	0xa409: "Saturation",
	0xa40a: "Sharpness",
	0xa420: "ImageUniqueID",
	0xa460: "CompositeImage",
	0xa461: "SourceImageNumberOfCompositeImage",
	0xa462: "SourceExposureTimesOfCompositeImage",
	0xa431: "BodySerialNumber",
	0xa432: "LensSpecification",
	0xa433: "LensMake",
	0xa434: "LensModel",
	0xa435: "LensSerialNumber",
}

// canonMakerNoteFields overrides exifFields for the one embedded directory
// ordinal whose tag ids collide in meaning with the standard dictionary.
var canonMakerNoteFields = map[uint16]string{
	0x0006: "CameraModel",
	0x0007: "FirmwareVersion",
	0x0095: "LensModel",
	0x0096: "LensManufacturingCode",
}

// fieldName resolves a tag id against the maker-note override first
// (when active), then the standard dictionary.
func fieldName(tagID uint16, makerNote bool) string {
	if makerNote {
		if name, ok := canonMakerNoteFields[tagID]; ok {
			return name
		}
	}
	if name, ok := exifFields[tagID]; ok {
		return name
	}
	return ""
}
