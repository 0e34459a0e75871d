// Package printer renders token trees back to source text.
//
// Назначение: вывод раскрытого файла (expand) и ответов invoke.
// В режиме Exact токены из исходника воспроизводятся байт-в-байт вместе с trivia;
// в режиме Spaced (токены без trivia, например с провода) ставится один пробел
// между токенами, кроме склеенной (joint) пунктуации.
// Зависимости: internal/token, internal/lexer (только CheckRoundTrip).
package printer
