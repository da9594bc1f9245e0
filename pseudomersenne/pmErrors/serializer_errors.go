package pmErrors

// WriteErrorData is a struct holding additional information about serialization errors.
type WriteErrorData struct {
	PartialWrite bool // If PartialWrite is true, some write operations failed after partially writing something and the io.Writer is consequently in an invalid state.
	BytesWritten int  // BytesWritten is the number of bytes that were written by the operation that caused the error.
	IoError      bool // IoError indicates whether the error comes from the io.Writer or was detected before writing.
}

// ReadErrorData is a struct holding additional information about deserialization errors.
type ReadErrorData struct {
	PartialRead  bool   // If PartialRead is true, the io.Reader is in an invalid state, because what was read did not correspond to a complete field element.
	BytesRead    int    // BytesRead is the number of bytes that were read by the operation that caused the error.
	ActuallyRead []byte // may contain the data that was read when the error occurred. This is purely a debugging aid and may be nil.
	IoError      bool
}

// NewIntermediateWriteErrorData creates the payload for an io error that happened after writing bytesWritten out of expectedToWrite bytes.
func NewIntermediateWriteErrorData(bytesWritten int, expectedToWrite int) WriteErrorData {
	return WriteErrorData{PartialWrite: bytesWritten != 0 && bytesWritten != expectedToWrite, BytesWritten: bytesWritten, IoError: true}
}

// NewIntermediateReadErrorData creates the payload for an io error that happened after reading bytesRead out of expectedToRead bytes.
func NewIntermediateReadErrorData(bytesRead int, expectedToRead int, actuallyRead []byte) ReadErrorData {
	return ReadErrorData{PartialRead: bytesRead != 0 && bytesRead != expectedToRead, BytesRead: bytesRead, ActuallyRead: actuallyRead, IoError: true}
}

// NoReadAttempt can be used as payload if some error was detected before trying to read.
var NoReadAttempt = ReadErrorData{}

// NoWriteAttempt can be used as payload if some error was detected before trying to write.
var NoWriteAttempt = WriteErrorData{}

type SerializationError = ErrorWithData[WriteErrorData]
type DeserializationError = ErrorWithData[ReadErrorData]
