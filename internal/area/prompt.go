package area

// extractCityInstruction constrains the completion to a bare municipality
// name. The response is still treated as untrusted text and passes through
// sanitize.CompletionLine before use.
const extractCityInstruction = `与えられた入力文から市区町村名を抽出して下さい。
レスポンスは市区町村名のみとして下さい。記号や説明文は必要ありません。
地名が「東京」や「京田辺」の様な形式の場合は、東京都や京田辺市の様に補完して下さい。`

const extractCityUserPrefix = "次の入力文から市区町村名を抽出して下さい。入力文:"
