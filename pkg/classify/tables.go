package classify

func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}

	return out
}

// pythonStdlib lists top-level modules of the CPython 3 standard library.
var pythonStdlib = set(
	"__future__", "__main__", "_thread", "abc", "aifc", "argparse", "array",
	"ast", "asynchat", "asyncio", "asyncore", "atexit", "audioop", "base64",
	"bdb", "binascii", "binhex", "bisect", "builtins", "bz2", "calendar",
	"cgi", "cgitb", "chunk", "cmath", "cmd", "code", "codecs", "codeop",
	"collections", "colorsys", "compileall", "concurrent", "configparser",
	"contextlib", "contextvars", "copy", "copyreg", "cProfile", "crypt",
	"csv", "ctypes", "curses", "dataclasses", "datetime", "dbm", "decimal",
	"difflib", "dis", "distutils", "doctest", "email", "encodings", "enum",
	"errno", "faulthandler", "fcntl", "filecmp", "fileinput", "fnmatch",
	"formatter", "fractions", "ftplib", "functools", "gc", "getopt", "getpass",
	"gettext", "glob", "graphlib", "grp", "gzip", "hashlib", "heapq", "hmac",
	"html", "http", "imaplib", "imghdr", "imp", "importlib", "inspect", "io",
	"ipaddress", "itertools", "json", "keyword", "lib2to3", "linecache",
	"locale", "logging", "lzma", "mailbox", "mailcap", "marshal", "math",
	"mimetypes", "mmap", "modulefinder", "msilib", "msvcrt", "multiprocessing",
	"netrc", "nis", "nntplib", "numbers", "operator", "optparse", "os",
	"ossaudiodev", "parser", "pathlib", "pdb", "pickle", "pickletools", "pipes",
	"pkgutil", "platform", "plistlib", "poplib", "posix", "posixpath", "pprint",
	"profile", "pstats", "pty", "pwd", "py_compile", "pyclbr", "pydoc", "queue",
	"quopri", "random", "re", "readline", "reprlib", "resource", "rlcompleter",
	"runpy", "sched", "secrets", "select", "selectors", "shelve", "shlex",
	"shutil", "signal", "site", "smtpd", "smtplib", "sndhdr", "socket",
	"socketserver", "spwd", "sqlite3", "ssl", "stat", "statistics", "string",
	"stringprep", "struct", "subprocess", "sunau", "symbol", "symtable", "sys",
	"sysconfig", "syslog", "tabnanny", "tarfile", "telnetlib", "tempfile",
	"termios", "test", "textwrap", "threading", "time", "timeit", "tkinter",
	"token", "tokenize", "tomllib", "trace", "traceback", "tracemalloc", "tty",
	"turtle", "turtledemo", "types", "typing", "unicodedata",
	"unittest", "urllib", "uu", "uuid", "venv", "warnings", "wave", "weakref",
	"webbrowser", "winreg", "winsound", "wsgiref", "xdrlib", "xml", "xmlrpc",
	"zipapp", "zipfile", "zipimport", "zlib", "zoneinfo",
)

// nodePrefixOnly lists built-ins that exist only as node:name.
var nodePrefixOnly = set("sea", "sqlite", "test")

// nodeCore lists Node.js built-in modules importable without the node: prefix.
var nodeCore = set(
	"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
	"constants", "crypto", "dgram", "diagnostics_channel", "dns", "domain",
	"events", "fs", "http", "http2", "https", "inspector", "module", "net",
	"os", "path", "perf_hooks", "process", "punycode", "querystring", "readline",
	"repl", "stream", "string_decoder", "sys", "timers", "tls", "trace_events",
	"tty", "url", "util", "v8", "vm", "wasi", "worker_threads", "zlib",
	"freelist", "_linklist", "smalloc",
	"_http_agent", "_http_client", "_http_common", "_http_incoming",
	"_http_outgoing", "_http_server", "_stream_duplex", "_stream_passthrough",
	"_stream_readable", "_stream_transform", "_stream_wrap", "_stream_writable",
	"_tls_common", "_tls_wrap",
)

// cHeaders holds ISO C, C++ standard library, POSIX and Apple umbrella headers.
var cHeaders = set(
	// ISO C.
	"assert.h", "complex.h", "ctype.h", "errno.h", "fenv.h", "float.h",
	"inttypes.h", "iso646.h", "limits.h", "locale.h", "math.h", "setjmp.h",
	"signal.h", "stdalign.h", "stdarg.h", "stdatomic.h", "stdbit.h",
	"stdbool.h", "stdckdint.h", "stddef.h", "stdint.h", "stdio.h", "stdlib.h",
	"stdnoreturn.h", "string.h", "tgmath.h", "threads.h", "time.h", "uchar.h",
	"wchar.h", "wctype.h",
	// C++.
	"algorithm", "any", "array", "atomic", "barrier", "bit", "bitset",
	"cassert", "ccomplex", "cctype", "cerrno", "cfenv", "cfloat", "charconv",
	"chrono", "cinttypes", "climits", "clocale", "cmath", "codecvt", "compare",
	"complex", "concepts", "condition_variable", "coroutine", "csetjmp",
	"csignal", "cstdarg", "cstddef", "cstdint", "cstdio", "cstdlib", "cstring",
	"ctime", "cuchar", "cwchar", "cwctype", "deque", "exception", "execution",
	"expected", "filesystem", "format", "forward_list", "fstream", "functional",
	"future", "initializer_list", "iomanip", "ios", "iosfwd", "iostream",
	"istream", "iterator", "latch", "limits", "list", "locale", "map", "memory",
	"memory_resource", "mutex", "new", "numbers", "numeric", "optional",
	"ostream", "print", "queue", "random", "ranges", "ratio", "regex",
	"scoped_allocator", "semaphore", "set", "shared_mutex", "source_location",
	"span", "sstream", "stack", "stacktrace", "stdexcept", "stop_token",
	"streambuf", "string", "string_view", "syncstream", "system_error",
	"thread", "tuple", "type_traits", "typeindex", "typeinfo", "unordered_map",
	"unordered_set", "utility", "valarray", "variant", "vector", "version",
	// POSIX.
	"aio.h", "arpa/inet.h", "cpio.h", "dirent.h", "dlfcn.h", "fcntl.h",
	"fmtmsg.h", "fnmatch.h", "ftw.h", "glob.h", "grp.h", "iconv.h",
	"langinfo.h", "libgen.h", "monetary.h", "mqueue.h", "ndbm.h", "net/if.h",
	"netdb.h", "netinet/in.h", "netinet/tcp.h", "nl_types.h", "poll.h",
	"pthread.h", "pwd.h", "regex.h", "sched.h", "search.h", "semaphore.h",
	"spawn.h", "strings.h", "sys/ipc.h", "sys/mman.h", "sys/msg.h",
	"sys/resource.h", "sys/select.h", "sys/sem.h", "sys/shm.h",
	"sys/socket.h", "sys/stat.h", "sys/statvfs.h", "sys/time.h",
	"sys/times.h", "sys/types.h", "sys/uio.h", "sys/un.h", "sys/utsname.h",
	"sys/wait.h", "syslog.h", "tar.h", "termios.h", "ulimit.h", "unistd.h",
	"utime.h", "utmpx.h", "wordexp.h",
	// Apple platform umbrellas.
	"Foundation/Foundation.h", "UIKit/UIKit.h", "AppKit/AppKit.h",
	"Cocoa/Cocoa.h", "CoreFoundation/CoreFoundation.h",
)

// rustStdlib lists the crates shipped with the Rust toolchain.
var rustStdlib = set("std", "core", "alloc", "proc_macro", "test")

// goStdlib lists the first path elements of the Go standard library.
var goStdlib = set(
	"archive", "bufio", "builtin", "bytes", "cmp", "compress", "container",
	"context", "crypto", "database", "debug", "embed", "encoding", "errors",
	"expvar", "flag", "fmt", "go", "hash", "html", "image", "index",
	"internal", "io", "iter", "log", "maps", "math", "mime", "net", "os",
	"path", "plugin", "reflect", "regexp", "runtime", "slices", "sort",
	"strconv", "strings", "structs", "sync", "syscall", "testing", "text",
	"time", "unicode", "unique", "unsafe", "weak",
)

// jvmStdlibPrefixes are package roots provided by the JDK and the Kotlin and
// Scala standard libraries.
var jvmStdlibPrefixes = []string{
	"java", "javax", "jdk", "sun", "com.sun",
	"org.w3c.dom", "org.xml.sax", "org.ietf.jgss",
	"kotlin", "scala",
}

var dotnetStdlibPrefixes = []string{
	"System", "Microsoft.CSharp", "Microsoft.VisualBasic", "Microsoft.Win32",
}

// swiftModules lists Swift toolchain and Apple platform SDK modules.
var swiftModules = set(
	"Swift", "_Concurrency", "Foundation", "FoundationNetworking", "Dispatch",
	"Darwin", "Glibc", "Musl", "WinSDK", "ObjectiveC", "os", "XCTest",
	"Testing", "RegexBuilder", "Synchronization", "Observation", "Cxx",
	"UIKit", "AppKit", "SwiftUI", "SwiftData", "Combine", "CoreData",
	"CoreGraphics", "CoreFoundation", "CoreLocation", "CoreImage", "CoreML",
	"CoreText", "CoreMotion", "CoreBluetooth", "CoreAudio", "CoreMedia",
	"CoreVideo", "CoreHaptics", "QuartzCore", "AudioToolbox", "AVFoundation",
	"AVKit", "ImageIO", "MapKit", "Metal", "MetalKit", "ModelIO", "SceneKit",
	"SpriteKit", "GameKit", "GameplayKit", "ARKit", "RealityKit", "HealthKit",
	"HomeKit", "CloudKit", "StoreKit", "WebKit", "Security", "CryptoKit",
	"Network", "UserNotifications", "Photos", "PhotosUI", "Contacts",
	"EventKit", "Accelerate", "Vision", "NaturalLanguage", "Charts",
	"WidgetKit", "AppIntents", "Intents", "LocalAuthentication",
	"MultipeerConnectivity", "SystemConfiguration", "IOKit", "MessageUI",
	"SafariServices", "PencilKit", "QuickLook",
)

// rubyStdlib lists default libraries and default gems of CRuby.
var rubyStdlib = set(
	"abbrev", "base64", "benchmark", "bigdecimal", "cgi", "coverage", "csv",
	"date", "delegate", "digest", "drb", "English", "erb", "etc", "fcntl",
	"fiber", "fiddle", "fileutils", "find", "forwardable", "getoptlong", "io",
	"ipaddr", "irb", "json", "logger", "matrix", "monitor", "mutex_m", "net",
	"objspace", "observer", "open-uri", "open3", "openssl", "optparse",
	"ostruct", "pathname", "pp", "prettyprint", "prime", "pstore", "psych",
	"racc", "rbconfig", "rdoc", "readline", "reline", "resolv", "ripper",
	"rubygems", "securerandom", "set", "shellwords", "singleton", "socket",
	"stringio", "strscan", "syslog", "tempfile", "time", "timeout", "tmpdir",
	"tracer", "tsort", "un", "uri", "weakref", "yaml", "zlib",
)
